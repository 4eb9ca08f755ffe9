package rbac

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/shared"
)

// Authorize checks a single requirement against the resolved session. The
// requirement may be a permission name or a role name; handlers use both
// patterns. A super-admin session short-circuits every check. The check is a
// set membership, so gating one request on several requirements is cheap.
func Authorize(sess *shared.Session, requirement string) error {
	if sess == nil {
		return fmt.Errorf("rbac: no session: %w", httpx.ErrUnauthenticated)
	}
	if sess.SuperAdmin {
		return nil
	}
	if sess.HasPermission(requirement) || sess.HasRole(requirement) {
		return nil
	}
	return fmt.Errorf("rbac: requires %q: %w", requirement, httpx.ErrPermissionDenied)
}

// Middleware wires RBAC authorization helpers for HTTP handlers. It operates
// on the session resolved by the auth middleware; no store access per check.
type Middleware struct {
	Logger *slog.Logger
}

// RequireAny ensures the current session satisfies at least one requirement.
func (m Middleware) RequireAny(requirements ...string) func(http.Handler) http.Handler {
	normalized := normalizeRequirements(requirements)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(normalized) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			sess := shared.SessionFromContext(r.Context())
			var lastErr error
			for _, req := range normalized {
				if err := Authorize(sess, req); err == nil {
					next.ServeHTTP(w, r)
					return
				} else {
					lastErr = err
				}
			}
			m.deny(w, r, lastErr)
		})
	}
}

// RequireAll ensures the current session satisfies every requirement.
func (m Middleware) RequireAll(requirements ...string) func(http.Handler) http.Handler {
	normalized := normalizeRequirements(requirements)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			for _, req := range normalized {
				if err := Authorize(sess, req); err != nil {
					m.deny(w, r, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) deny(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		err = httpx.ErrPermissionDenied
	}
	if m.Logger != nil {
		m.Logger.Warn("authorization denied",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func normalizeRequirements(requirements []string) []string {
	unique := make(map[string]struct{}, len(requirements))
	ordered := make([]string, 0, len(requirements))
	for _, req := range requirements {
		req = strings.TrimSpace(req)
		if req == "" {
			continue
		}
		if _, ok := unique[req]; ok {
			continue
		}
		unique[req] = struct{}{}
		ordered = append(ordered, req)
	}
	return ordered
}
