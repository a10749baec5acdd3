package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/service/auth"
	"github.com/phrazzld/calorie-api/internal/store"
)

// internalErrorMessage is the only text clients see for unexpected failures.
const internalErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. Conflicts are reported as 400 like any other
// rejected request.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Classified errors carry their kind
	case errors.Is(err, domain.ErrInternal):
		return http.StatusInternalServerError
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Store errors that escaped classification
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err.
// Classified errors expose their own message unless they are internal;
// everything else gets a generic text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return internalErrorMessage
	}

	if de, ok := domain.AsError(err); ok && de.Kind != domain.KindInternal {
		return de.Message
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "No Token, auth denied"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Token is invalid"
	case store.IsNotFoundError(err):
		return "Resource not found"
	case store.IsDuplicateError(err):
		return "Resource already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	default:
		return internalErrorMessage
	}
}

// HandleAPIError writes the error response for err. Request validation
// failures list every failing field; anything else gets a single message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		shared.RespondWithValidationErrors(w, r, ve)
		return
	}
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
