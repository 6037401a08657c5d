// Package apperr defines the error taxonomy shared by services and
// controllers: sentinel kinds that services attach with fmt.Errorf("%w"),
// and the HTTP status each kind maps to at the API boundary.
package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates a missing test, course, enrollment or attempt.
	ErrNotFound = errors.New("not found")
	// ErrPreconditionFailed indicates a domain guard rejected the operation,
	// e.g. requesting a certificate before completing the course.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrConflict indicates the record is already in the requested state.
	ErrConflict = errors.New("conflict")
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("validation")
)

// HTTPStatus maps an error to the status code controllers should respond
// with. Anything untagged is treated as an internal database/server error.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPreconditionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsClient reports whether the error should be surfaced verbatim to the
// caller. Internal errors are logged and replaced with a generic message so
// raw driver text never reaches the end user.
func IsClient(err error) bool {
	return HTTPStatus(err) < http.StatusInternalServerError
}
