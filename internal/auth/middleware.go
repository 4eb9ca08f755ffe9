package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/shared"
)

// CookieName is the fallback transport for the access token. The cookie
// carries the same token format as the Authorization header.
const CookieName = "gharinto_token"

// Middleware authenticates requests and stores the resolved session in the
// request context. Routes mounted behind it can assume a complete session;
// there is no partially authenticated state.
type Middleware struct {
	Logger  *slog.Logger
	Service *Service
}

// Authenticate verifies the bearer credential and resolves the session. The
// failure body is identical for a missing, malformed, expired or revoked
// token and for an unknown or deactivated account.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := ExtractToken(r)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		sess, err := m.Service.EstablishSession(r.Context(), raw)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("authentication failed",
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
			}
			httpx.RespondError(w, err)
			return
		}
		ctx := shared.ContextWithSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractToken pulls the raw token from the Authorization header, falling
// back to the session cookie.
func ExtractToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header != "" {
		const prefix = "Bearer "
		if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
			return strings.TrimSpace(header[len(prefix):]), nil
		}
		return "", fmt.Errorf("auth: malformed authorization header: %w", httpx.ErrUnauthenticated)
	}
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", fmt.Errorf("auth: missing credentials: %w", httpx.ErrUnauthenticated)
}
