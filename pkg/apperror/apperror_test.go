package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func TestKindAndHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   string
		status int
	}{
		{"nil", nil, "success", http.StatusOK},
		{"not found", fmt.Errorf("warehouse 7: %w", apperror.ErrNotFound), "not_found", http.StatusNotFound},
		{"capacity", fmt.Errorf("%w: full", apperror.ErrCapacityExceeded), "capacity_exceeded", http.StatusConflict},
		{"stock", apperror.ErrInsufficientStock, "insufficient_stock", http.StatusConflict},
		{"invalid", fmt.Errorf("%w: amount must be positive", apperror.ErrInvalidArgument), "invalid_argument", http.StatusBadRequest},
		{"conflict", apperror.ErrConflict, "conflict", http.StatusConflict},
		{"duplicate", apperror.ErrDuplicateRequest, "duplicate_request", http.StatusConflict},
		{"unexpected", errors.New("connection reset"), "error", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, apperror.Kind(tt.err))
			assert.Equal(t, tt.status, apperror.HTTPStatus(tt.err))
		})
	}
}
