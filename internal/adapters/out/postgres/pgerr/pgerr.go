// Package pgerr translates low-level Postgres errors into the domain error
// taxonomy. Repositories run every insert error through it so the
// application layer only ever sees errs types.
package pgerr

import (
	"errors"

	"manufacturing/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE class 23 code Postgres raises when an
// insert breaks a uniqueness constraint.
const uniqueViolation = "23505"

// TranslateUnique maps a unique-constraint violation onto
// errs.ObjectAlreadyExistsError, which the idempotency guard knows how to
// absorb. GORM's TranslateError surfaces gorm.ErrDuplicatedKey; the pgconn
// check covers paths where translation is off, such as raw batch inserts.
// Any other error passes through unchanged.
func TranslateUnique(err error, objectType string, key any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewObjectAlreadyExistsErrorWithCause(objectType, key, err)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) && pgError.Code == uniqueViolation {
		return errs.NewObjectAlreadyExistsErrorWithCause(objectType, key, err)
	}
	return err
}
