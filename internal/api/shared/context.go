package shared

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/calorie-api/internal/service/auth"
)

// ContextKey is the type of request context keys set by this package.
type ContextKey string

// Context keys for various values
const (
	// ClaimsContextKey holds the authenticated principal's verified claims.
	ClaimsContextKey ContextKey = "claims"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader carries the trace ID back to the client.
	TraceIDHeader = "X-Trace-Id"
)

// SetTraceID adds a fresh trace ID to the context.
// It is used to correlate logs with error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithClaims attaches the verified claims of the authenticated principal.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFromContext returns the claims attached by WithClaims, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// generateTraceID returns 32 hex characters. When the random source fails it
// falls back to the current time, which is unique enough for log correlation.
func generateTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackTraceID(time.Now())
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

func fallbackTraceID(now time.Time) string {
	s := strconv.FormatInt(now.UnixNano(), 16)
	return strings.Repeat("0", 32-len(s)) + s
}
