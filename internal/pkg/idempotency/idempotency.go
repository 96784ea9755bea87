// Package idempotency implements the check-then-create-or-fetch pattern used
// for every "create X for natural key Y" operation. It makes duplicate-create
// races benign: concurrent callers converge on the single row that won the
// uniqueness constraint, and only the winning caller observes a creation.
//
// The pattern requires the data store to enforce the natural key with a real
// uniqueness constraint; repositories translate such violations into
// errs.ObjectAlreadyExistsError before this package sees them.
package idempotency

import (
	"context"
	"errors"

	"manufacturing/internal/pkg/errs"
)

// CreateOrFetch returns the row identified by a natural key, creating it when
// absent.
//
// The find func must return errs.ErrObjectNotFound (via errors.Is) when no row
// exists. The create func must perform the insert — including anything that
// has to be committed atomically with it — and return the created row.
//
// Behavior:
//  1. find succeeds: the existing row is returned, created=false. No insert,
//     no creation side effects.
//  2. find misses: create runs. On success the new row is returned,
//     created=true.
//  3. create loses a race (errs.ErrObjectAlreadyExists): the row inserted by
//     the concurrent winner is fetched and returned, created=false. The
//     conflict is not surfaced.
//
// Callers use the created flag to emit "created" audit events exactly once.
func CreateOrFetch[T any](
	ctx context.Context,
	find func(ctx context.Context) (T, error),
	create func(ctx context.Context) (T, error),
) (row T, created bool, err error) {
	var zero T

	row, err = find(ctx)
	if err == nil {
		return row, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return zero, false, err
	}

	row, err = create(ctx)
	if err == nil {
		return row, true, nil
	}
	if !errors.Is(err, errs.ErrObjectAlreadyExists) {
		return zero, false, err
	}

	// A concurrent caller won the insert race; their row is the answer.
	row, err = find(ctx)
	if err != nil {
		return zero, false, err
	}
	return row, false, nil
}
