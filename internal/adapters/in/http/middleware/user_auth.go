// internal/adapters/in/http/middleware/user_auth.go
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "github.com/UDAY2232/LackLink/internal/application/usecase"
	"github.com/UDAY2232/LackLink/internal/domain/common"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

type ctxKey string

const ctxKeySession ctxKey = "userSession"

// Authenticator resolves a bearer token to the principal's UserSession.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*usecase.UserSession, error)
}

// UserAuthMiddleware verifies the bearer token and stores the UserSession in context.
type UserAuthMiddleware struct {
	Auth Authenticator
}

// Handler requires a valid bearer token.
func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return m.wrap(next, true)
}

// Optional attaches the session when a bearer token is present and lets anonymous requests through.
// A token that fails verification is still rejected.
func (m *UserAuthMiddleware) Optional(next http.Handler) http.Handler {
	return m.wrap(next, false)
}

func (m *UserAuthMiddleware) wrap(next http.Handler, required bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Auth == nil {
			writeError(w, http.StatusServiceUnavailable, "user auth middleware not initialized")
			return
		}

		token, present := BearerToken(r)
		if !present {
			if required {
				writeError(w, http.StatusUnauthorized, "unauthorized: missing bearer token")
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized: empty bearer token")
			return
		}

		us, err := m.Auth.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrUnauthenticated) || errors.Is(err, common.ErrValidation) {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			log.Printf("[user_auth] verify failed: %v", err)
			writeError(w, http.StatusBadGateway, "identity provider unavailable")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeySession, us)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken returns the Authorization bearer token and whether the header carried one.
func BearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")), true
}

// CurrentSession returns the UserSession attached by UserAuthMiddleware.
func CurrentSession(r *http.Request) (*usecase.UserSession, bool) {
	us, ok := r.Context().Value(ctxKeySession).(*usecase.UserSession)
	if !ok || us == nil {
		return nil, false
	}
	return us, true
}

// CurrentUser returns the loaded Identity of the request.
// It is false while the identity is absent, e.g. after a store failure.
func CurrentUser(r *http.Request) (*userdom.User, bool) {
	us, ok := CurrentSession(r)
	if !ok {
		return nil, false
	}
	u := us.Identity()
	return u, u != nil
}

// WithSession is used by tests and internal callers that already hold a session.
func WithSession(ctx context.Context, us *usecase.UserSession) context.Context {
	return context.WithValue(ctx, ctxKeySession, us)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
