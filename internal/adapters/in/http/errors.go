package http

import (
	"errors"
	"net/http"

	"manufacturing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors onto HTTP status codes: invalid input is
// 400, a missing or foreign-tenant object is 404, a natural-key collision
// is 409, everything else is 500.
func writeError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), Error{
		Code:    statusFor(err),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}

	var alreadyExists *errs.ObjectAlreadyExistsError
	if errors.As(err, &alreadyExists) {
		return http.StatusConflict
	}

	var invalid *errs.ValueIsInvalidError
	var outOfRange *errs.ValueIsOutOfRangeError
	var required *errs.ValueIsRequiredError
	if errors.As(err, &invalid) || errors.As(err, &outOfRange) || errors.As(err, &required) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// badRequest writes a 400 with the given message, used for malformed path
// and body input before a command is even constructed.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
