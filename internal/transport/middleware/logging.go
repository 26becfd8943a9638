package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

// maxLoggedBody caps how much of a request or response body is buffered for
// the debug log. The handler still sees the whole request body.
const maxLoggedBody = 4 << 10

const masked = "[FILTERED]"

// maskedKeys are matched as substrings of lowercased JSON keys and header
// names.
var maskedKeys = []string{
	"password",
	"token",
	"authorization",
	"secret",
	"cookie",
	"session",
	"credential",
	"email",
}

func isMasked(name string) bool {
	name = strings.ToLower(name)
	for _, k := range maskedKeys {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// LoggingMiddleware writes one line per request and one per response at
// Info. Headers and bodies are only logged at Debug, with credentials and
// emails masked and bodies truncated to maxLoggedBody.
func LoggingMiddleware(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			log := logger.FromOr(r.Context(), base)
			debug := log.Enabled(r.Context(), slog.LevelDebug)

			log.Info("incoming request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"content_length", r.ContentLength)

			if debug {
				log.Debug("request detail",
					"request_id", reqID,
					"headers", maskHeaders(r.Header),
					"body", peekBody(r))
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var captured *capBuffer
			if debug {
				captured = &capBuffer{limit: maxLoggedBody}
				ww.Tee(captured)
			}

			next.ServeHTTP(ww, r)

			logResponse(log, r, ww, captured, time.Since(start), reqID)
		})
	}
}

func logResponse(log *slog.Logger, r *http.Request, ww middleware.WrapResponseWriter, captured *capBuffer, duration time.Duration, reqID string) {
	status := ww.Status()
	if status == 0 {
		status = http.StatusOK
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	attrs := []any{
		"request_id", reqID,
		"status_code", status,
		"duration_ms", duration.Milliseconds(),
		"response_size", ww.BytesWritten(),
	}
	if captured != nil {
		attrs = append(attrs, "body", describeBody(captured.buf.Bytes(), captured.truncated))
	}
	log.Log(r.Context(), level, "response", attrs...)
}

// peekBody reads at most maxLoggedBody bytes and puts them back in front of
// the unread remainder, so handlers and their size limits see the original
// stream.
func peekBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}

	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
	if err != nil {
		return "[UNREADABLE]"
	}

	truncated := len(head) > maxLoggedBody
	if truncated {
		head = head[:maxLoggedBody]
	}
	return describeBody(head, truncated)
}

// describeBody renders a JSON body with masked fields. Truncated or non-JSON
// bodies are summarized by size only, since they cannot be masked reliably.
func describeBody(body []byte, truncated bool) string {
	if len(body) == 0 {
		return ""
	}
	if truncated {
		return fmt.Sprintf("[TRUNCATED more than %d bytes]", len(body))
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Sprintf("[NON-JSON %d bytes]", len(body))
	}
	out, err := json.Marshal(maskJSON(decoded))
	if err != nil {
		return fmt.Sprintf("[UNPRINTABLE %d bytes]", len(body))
	}
	return string(out)
}

func maskJSON(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			if isMasked(k) {
				out[k] = masked
				continue
			}
			out[k] = maskJSON(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = maskJSON(item)
		}
		return out
	default:
		return v
	}
}

func maskHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if isMasked(name) {
			out[name] = masked
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// capBuffer keeps the first limit bytes written to it and drops the rest.
// It never fails a write.
type capBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (c *capBuffer) Write(p []byte) (int, error) {
	if room := c.limit - c.buf.Len(); room > 0 {
		if len(p) > room {
			c.buf.Write(p[:room])
			c.truncated = true
		} else {
			c.buf.Write(p)
		}
	} else if len(p) > 0 {
		c.truncated = true
	}
	return len(p), nil
}
