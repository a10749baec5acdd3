package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/calorie-api/internal/api/shared"
	"github.com/phrazzld/calorie-api/internal/domain"
	"github.com/phrazzld/calorie-api/internal/platform/logger"
)

// maxSanitizedBody bounds how much of a request body is inspected.
const maxSanitizedBody = 1 << 20

// SanitizeInput rejects JSON bodies carrying a value outside the accepted
// character set. Values are checked in document order, nested objects and
// arrays included; object keys are not checked. Empty and non-JSON bodies
// pass through untouched. The body is restored for the next handler.
func SanitizeInput(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body == nil || r.Body == http.NoBody {
			next.ServeHTTP(w, r)
			return
		}

		raw, err := io.ReadAll(io.LimitReader(r.Body, maxSanitizedBody+1))
		_ = r.Body.Close()
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return
		}
		if len(raw) > maxSanitizedBody {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(raw))

		value, ok := firstUnsafeValue(raw)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Debug("rejected unsafe input", slog.String("path", r.URL.Path))
		shared.RespondWithError(w, r, http.StatusBadRequest, fmt.Sprintf("%q is unacceptable", stripSpace(value)))
	})
}

// frame tracks the container being walked.
type frame struct {
	object    bool
	expectKey bool
}

// firstUnsafeValue walks raw as a JSON token stream and returns the first
// scalar value that fails domain.IsSafeText. Malformed JSON reports nothing.
func firstUnsafeValue(raw []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var stack []frame
	for {
		tok, err := dec.Token()
		if err != nil {
			// io.EOF or a syntax error; handlers reject malformed bodies.
			return "", false
		}

		if delim, ok := tok.(json.Delim); ok {
			switch delim {
			case '{':
				markValueSeen(stack)
				stack = append(stack, frame{object: true, expectKey: true})
			case '[':
				markValueSeen(stack)
				stack = append(stack, frame{})
			case '}', ']':
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectKey {
			stack[n-1].expectKey = false
			continue
		}
		markValueSeen(stack)

		text := scalarText(tok)
		if !domain.IsSafeText(text) {
			return text, true
		}
	}
}

// markValueSeen records that the enclosing object consumed a value, so the
// next string token is a key.
func markValueSeen(stack []frame) {
	if n := len(stack); n > 0 && stack[n-1].object {
		stack[n-1].expectKey = true
	}
}

func scalarText(tok json.Token) string {
	switch v := tok.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
