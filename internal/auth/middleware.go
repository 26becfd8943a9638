package auth

import (
	"net/http"

	errors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/transport"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
)

type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// IdentityMiddleware resolves bearer tokens into a caller id.
type IdentityMiddleware struct {
	tokens TokenVerifier
}

func NewIdentityMiddleware(tokens TokenVerifier) *IdentityMiddleware {
	return &IdentityMiddleware{tokens: tokens}
}

// Identify attaches the caller when the token verifies. Missing or invalid
// tokens leave the request anonymous; it never writes a response.
func (m *IdentityMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := transport.ExtractTokenFromHeader(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			logger.From(r.Context()).Debug("bearer token rejected", "reason", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		ctx := errors.ContextWithUserID(r.Context(), claims.UserID)
		ctx = logger.With(ctx, "userID", claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects anonymous requests with 401.
func (m *IdentityMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := errors.UserIDFromContext(r.Context()); !ok {
			transport.WriteErrorEnvelope(w, errors.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
