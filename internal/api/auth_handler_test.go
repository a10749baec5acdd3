package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	alice := testUser("alice@example.com", "alice01")
	users := &mocks.MockUserService{
		AuthenticateFn: func(_ context.Context, email, password string) (*domain.User, error) {
			switch {
			case email != alice.Email:
				return nil, domain.NewNotFoundError("Email not found")
			case password != "secret1":
				return nil, domain.NewValidationError("Email/password are not correct")
			}
			public := alice.Public()
			return &public, nil
		},
	}

	login := func(t *testing.T, h *AuthHandler, body interface{}) (int, []byte) {
		rec := serve(t, route{method: http.MethodPost, pattern: "/auth", target: "/auth", body: body}, h.Login)
		return rec.Code, rec.Body.Bytes()
	}

	t.Run("success", func(t *testing.T) {
		var signedFor domain.User
		h := NewAuthHandler(users, &mocks.MockJWTService{
			GenerateTokenFn: func(_ context.Context, u domain.User) (string, error) {
				signedFor = u
				return "signed.jwt", nil
			},
		}, testLogger)

		code, raw := login(t, h, map[string]string{"email": alice.Email, "password": "secret1"})
		require.Equal(t, http.StatusOK, code, string(raw))

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(raw, &resp))
		assert.Equal(t, "signed.jwt", resp.JWT)
		assert.Equal(t, alice.ID, resp.User.ID)
		assert.Empty(t, signedFor.HashedPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		h := NewAuthHandler(users, &mocks.MockJWTService{}, testLogger)
		code, _ := login(t, h, map[string]string{"email": "who@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("wrong password", func(t *testing.T) {
		h := NewAuthHandler(users, &mocks.MockJWTService{}, testLogger)
		code, raw := login(t, h, map[string]string{"email": alice.Email, "password": "secret2"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, string(raw), "Email/password are not correct")
	})

	t.Run("short password fails validation", func(t *testing.T) {
		h := NewAuthHandler(users, &mocks.MockJWTService{}, testLogger)
		code, raw := login(t, h, map[string]string{"email": alice.Email, "password": "abc"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, string(raw), "password must be at least 6 characters")
	})

	t.Run("signing failure", func(t *testing.T) {
		h := NewAuthHandler(users, &mocks.MockJWTService{Err: errors.New("key unavailable")}, testLogger)
		code, raw := login(t, h, map[string]string{"email": alice.Email, "password": "secret1"})
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.NotContains(t, string(raw), "key unavailable")
	})
}
