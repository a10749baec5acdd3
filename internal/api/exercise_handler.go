package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/service"
)

// ExerciseLogHandler serves the /exercise routes.
type ExerciseLogHandler struct {
	logs service.ExerciseLogService
}

// NewExerciseLogHandler creates a new ExerciseLogHandler.
func NewExerciseLogHandler(logs service.ExerciseLogService) *ExerciseLogHandler {
	return &ExerciseLogHandler{logs: logs}
}

// Create handles POST /exercise/createLog.
func (h *ExerciseLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateExerciseLogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, err := domain.ParseIdentifier("userId", req.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	entry, err := h.logs.Create(r.Context(), service.CreateExerciseLogParams{
		UserID:        userID,
		Activity:      req.Activity,
		CaloriesBurnt: *req.CaloriesBurnt,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entry)
}

// ListByUser handles GET /exercise/user/{userId}.
func (h *ExerciseLogHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathUUID(w, r, "userId")
	if !ok {
		return
	}
	result, err := h.logs.ListByUser(r.Context(), userID)
	respondWithResult(w, r, result, err)
}

// Get handles GET /exercise/log/{logId}.
func (h *ExerciseLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	logID, ok := handlePathUUID(w, r, "logId")
	if !ok {
		return
	}
	result, err := h.logs.Get(r.Context(), logID)
	respondWithResult(w, r, result, err)
}

// Update handles PUT /exercise/log/{logId}.
func (h *ExerciseLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	logID, ok := handlePathUUID(w, r, "logId")
	if !ok {
		return
	}

	var req UpdateExerciseLogRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.logs.Update(r.Context(), logID, domain.ExerciseLogUpdate{
		Activity:      req.Activity,
		CaloriesBurnt: req.CaloriesBurnt,
	})
	respondWithResult(w, r, result, err)
}

// Delete handles DELETE /exercise/log/{logId}.
func (h *ExerciseLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logID, ok := handlePathUUID(w, r, "logId")
	if !ok {
		return
	}
	result, err := h.logs.Delete(r.Context(), logID)
	respondWithResult(w, r, result, err)
}

// ListByDateRange handles GET /exercise/daterange/{begin}/{end}.
func (h *ExerciseLogHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	result, err := h.logs.ListByDateRange(r.Context(),
		chi.URLParam(r, "begin"), chi.URLParam(r, "end"))
	respondWithResult(w, r, result, err)
}

// SearchByActivity handles GET /exercise/activity/{activityName}.
func (h *ExerciseLogHandler) SearchByActivity(w http.ResponseWriter, r *http.Request) {
	result, err := h.logs.SearchByName(r.Context(), chi.URLParam(r, "activityName"))
	respondWithResult(w, r, result, err)
}

// ListByCalorieRange handles GET /exercise/calorierange/{begin}/{end}.
func (h *ExerciseLogHandler) ListByCalorieRange(w http.ResponseWriter, r *http.Request) {
	lo, hi, ok := handlePathRange(w, r)
	if !ok {
		return
	}
	result, err := h.logs.ListByCalorieRange(r.Context(), lo, hi)
	respondWithResult(w, r, result, err)
}
