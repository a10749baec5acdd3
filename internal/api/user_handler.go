package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/service"
	"github.com/phrazzld/calorie-api/internal/service/auth"
)

// UserHandler serves the /users routes.
type UserHandler struct {
	users      service.UserService
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, jwtService auth.JWTService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:      users,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "user_handler")),
	}
}

// Create handles POST /users/create.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
		Profile:   req.profile(),
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, ok := issueToken(w, r, h.jwtService, h.logger, user)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CreateUserResponse{NewUser: *user, JWT: token})
}

// GetByID handles GET /users/id/{userId}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// GetByUsername handles GET /users/userName/{userName}.
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), chi.URLParam(r, "userName"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// AllData handles GET /users/allData/{userId}.
func (h *UserHandler) AllData(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "userId")
	if !ok {
		return
	}

	data, err := h.users.AllData(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, data)
}

// Update handles PUT /users/update/{userId}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "userId")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Update(r.Context(), id, service.UpdateUserParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete handles DELETE /users/delete/{userId}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
