package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/service"
)

// CalorieLogHandler serves the /calories routes.
type CalorieLogHandler struct {
	logs service.CalorieLogService
}

// NewCalorieLogHandler creates a new CalorieLogHandler.
func NewCalorieLogHandler(logs service.CalorieLogService) *CalorieLogHandler {
	return &CalorieLogHandler{logs: logs}
}

// Create handles POST /calories/createLog.
func (h *CalorieLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCalorieLogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, err := domain.ParseIdentifier("userId", req.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	entry, err := h.logs.Create(r.Context(), service.CreateCalorieLogParams{
		UserID:    userID,
		Food:      req.Food,
		Calories:  *req.Calories,
		TimeOfDay: req.TimeOfDay,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// ListByUser handles GET /calories/user/{userId}.
func (h *CalorieLogHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathUUID(w, r, "userId")
	if !ok {
		return
	}
	result, err := h.logs.ListByUser(r.Context(), userID)
	respondWithResult(w, r, result, err)
}

// Get handles GET /calories/log/{logId}.
func (h *CalorieLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	logID, ok := handlePathUUID(w, r, "logId")
	if !ok {
		return
	}
	result, err := h.logs.Get(r.Context(), logID)
	respondWithResult(w, r, result, err)
}

// Update handles PUT /calories/log/{logId}.
func (h *CalorieLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	logID, ok := handlePathUUID(w, r, "logId")
	if !ok {
		return
	}

	var req UpdateCalorieLogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.logs.Update(r.Context(), logID, domain.CalorieLogUpdate{
		Food:     req.Food,
		Calories: req.Calories,
	})
	respondWithResult(w, r, result, err)
}

// Delete handles DELETE /calories/log/{logId}.
func (h *CalorieLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logID, ok := handlePathUUID(w, r, "logId")
	if !ok {
		return
	}
	result, err := h.logs.Delete(r.Context(), logID)
	respondWithResult(w, r, result, err)
}

// ListByDateRange handles GET /calories/daterange/{begin}/{end}.
func (h *CalorieLogHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	result, err := h.logs.ListByDateRange(r.Context(),
		chi.URLParam(r, "begin"), chi.URLParam(r, "end"))
	respondWithResult(w, r, result, err)
}

// SearchByFood handles GET /calories/food/{foodName}.
func (h *CalorieLogHandler) SearchByFood(w http.ResponseWriter, r *http.Request) {
	result, err := h.logs.SearchByName(r.Context(), chi.URLParam(r, "foodName"))
	respondWithResult(w, r, result, err)
}

// ListByCalorieRange handles GET /calories/calorierange/{begin}/{end}.
func (h *CalorieLogHandler) ListByCalorieRange(w http.ResponseWriter, r *http.Request) {
	lo, hi, ok := handlePathRange(w, r)
	if !ok {
		return
	}
	result, err := h.logs.ListByCalorieRange(r.Context(), lo, hi)
	respondWithResult(w, r, result, err)
}

// respondWithResult writes a service result, or the error when there is one.
func respondWithResult(w http.ResponseWriter, r *http.Request, result interface{}, err error) {
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
