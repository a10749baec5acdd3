package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
	"github.com/phrazzld/calorie-api/internal/redact"
	"github.com/phrazzld/calorie-api/internal/service"
	"github.com/phrazzld/calorie-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users      service.UserService
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users service.UserService, jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, ok := issueToken(w, r, h.jwtService, h.logger, user)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{User: *user, JWT: token})
}

// issueToken signs a token for user, writing a 500 on failure.
func issueToken(
	w http.ResponseWriter,
	r *http.Request,
	jwtService auth.JWTService,
	base *slog.Logger,
	user *domain.User,
) (string, bool) {
	token, err := jwtService.GenerateToken(r.Context(), *user)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), base).Error("failed to generate token",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID.String()))
		HandleAPIError(w, r, domain.NewError(domain.KindInternal, internalErrorMessage).Wrap(err))
		return "", false
	}
	return token, true
}
