package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// Postgres SQLSTATE codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// TranslateError maps driver and GORM errors onto apperror kinds.
// what names the entity for the error message, e.g. "warehouse 3".
func TranslateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperror.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation, codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: violates %s", what, apperror.ErrConflict, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}
