package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// route describes a single request against a handler mounted at pattern.
type route struct {
	method    string
	pattern   string
	target    string
	body      interface{}
	principal *domain.User
}

// serve mounts h on a fresh chi router and performs the request.
func serve(t *testing.T, rt route, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch b := rt.body.(type) {
	case nil:
	case string:
		body = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(rt.method, rt.target, body)
	req.Header.Set("Content-Type", "application/json")
	if rt.principal != nil {
		req = req.WithContext(shared.WithClaims(req.Context(), &auth.Claims{
			User:   rt.principal.Public(),
			UserID: rt.principal.ID,
		}))
	}

	r := chi.NewRouter()
	r.Method(rt.method, rt.pattern, h)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func testUser(email, username string) *domain.User {
	return &domain.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: "hashed:secret1",
		AuthToken:      uuid.New(),
	}
}
