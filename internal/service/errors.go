package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/store"
)

// internalMessage is the only text clients see for unexpected failures.
const internalMessage = "An unexpected error occurred"

// ServiceError records which service operation failed and why.
// It is the cause carried by internal domain errors, so logs keep the
// operation context while clients see only internalMessage.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Operation)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Err:       err,
	}
}

// internalError classifies err as an internal failure of the given operation.
func internalError(service, operation string, err error) error {
	return domain.NewError(domain.KindInternal, internalMessage).
		Wrap(NewServiceError(service, operation, err))
}

// rejectedValue maps a value storage refused to hold, such as an overflowing
// quantity or an impossible date, to a validation error. It returns nil for
// any other error.
func rejectedValue(err error) error {
	if errors.Is(err, store.ErrInvalidEntity) {
		return domain.NewValidationError("Invalid entity data").Wrap(err)
	}
	return nil
}
