package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrProductNotDeleted     = errors.New("product not deleted")
	ErrInvalidProduct        = errors.New("invalid product")
	ErrInvalidCategory       = errors.New("invalid category")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

// InvalidSearchParameterError is returned when a search request fails validation
type InvalidSearchParameterError struct {
	Message string
}

func (e *InvalidSearchParameterError) Error() string {
	return e.Message
}

// NewInvalidSearchParameter creates an InvalidSearchParameterError with a formatted message
func NewInvalidSearchParameter(format string, args ...any) error {
	return &InvalidSearchParameterError{Message: fmt.Sprintf(format, args...)}
}

// ProductNotDeletedError wraps the storage failure hit while saving a soft delete
type ProductNotDeletedError struct {
	ID  uuid.UUID
	Err error
}

func (e *ProductNotDeletedError) Error() string {
	return fmt.Sprintf("product with id %s could not be deleted: %v", e.ID, e.Err)
}

func (e *ProductNotDeletedError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrProductNotDeleted) match
func (e *ProductNotDeletedError) Is(target error) bool {
	return target == ErrProductNotDeleted
}

// ProductNotFound builds the not-found error for a product id
func ProductNotFound(id uuid.UUID) error {
	return fmt.Errorf("%w: product with id %s not found", ErrProductNotFound, id)
}

// CategoryNotFound builds the not-found error for a category identified by key
func CategoryNotFound(key string) error {
	return fmt.Errorf("%w: category %s not found", ErrCategoryNotFound, key)
}
