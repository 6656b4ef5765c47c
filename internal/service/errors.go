package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_schema/internal/domain"
	"github.com/Skotchmaster/shop_schema/internal/repo"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
)

// mapRepoError keeps the underlying error in the chain so callers can still
// match backend or domain errors directly.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, repo.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidQuantity):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}

func validation(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
