package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
	"github.com/phrazzld/calorie-api/internal/service/auth"
)

// decodeAndValidate reads the JSON body into req and validates it. On failure
// it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err)
		return false
	}
	return true
}

// getPathUUID extracts the identifier path parameter paramName. A malformed
// value yields "<paramName> <value> is not a valid UUID".
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	return domain.ParseIdentifier(paramName, chi.URLParam(r, paramName))
}

// getPathNumber extracts an integer path parameter.
func getPathNumber(r *http.Request, paramName string) (int, error) {
	return domain.ParseNumber(chi.URLParam(r, paramName))
}

// principalID returns the id of the authenticated principal. The
// authentication middleware must have run; if it did not, an error response
// is written and false returned.
func principalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := shared.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == uuid.Nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Warn("principal missing from request context")
		HandleAPIError(w, r, fmt.Errorf("principal missing from request context: %w", auth.ErrMissingToken))
		return uuid.Nil, false
	}
	return claims.UserID, true
}

// handlePathUUID extracts paramName and writes the error response when it is
// malformed.
func handlePathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := getPathUUID(r, paramName)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Debug("invalid path parameter",
				slog.String("param_name", paramName),
				slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}

// handlePathRange extracts the integer bounds begin and end.
func handlePathRange(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	lo, err := getPathNumber(r, "begin")
	if err != nil {
		HandleAPIError(w, r, err)
		return 0, 0, false
	}
	hi, err := getPathNumber(r, "end")
	if err != nil {
		HandleAPIError(w, r, err)
		return 0, 0, false
	}
	return lo, hi, true
}
