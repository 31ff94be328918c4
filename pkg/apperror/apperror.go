package apperror

import (
	"errors"
	"net/http"
)

// Error kinds surfaced by the inventory service. Callers wrap them with
// fmt.Errorf("...: %w", err) and match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrCapacityExceeded  = errors.New("warehouse capacity exceeded")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrConflict          = errors.New("conflict")
	ErrDuplicateRequest  = errors.New("duplicate request")
)

// Kind returns a short, label-safe name for the error kind of err.
func Kind(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrDuplicateRequest):
		return "duplicate_request"
	default:
		return "error"
	}
}

// HTTPStatus maps err to the status code the HTTP layer responds with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case "success":
		return http.StatusOK
	case "not_found":
		return http.StatusNotFound
	case "invalid_argument":
		return http.StatusBadRequest
	case "capacity_exceeded", "insufficient_stock", "conflict", "duplicate_request":
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
