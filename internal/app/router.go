package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharinto/platform/internal/auth"
	"github.com/gharinto/platform/internal/menu"
	"github.com/gharinto/platform/internal/observability"
	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/rbac"
	"github.com/gharinto/platform/internal/roles"
	"github.com/gharinto/platform/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	AuthHandler    *auth.Handler
	AuthMiddleware auth.Middleware
	RBACHandler    *rbac.Handler
	MenuHandler    *menu.Handler
	UsersHandler   *users.Handler
	RolesHandler   *roles.Handler
	Pool           *pgxpool.Pool
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with platform defaults. Everything
// except login and the health probes sits behind the auth middleware.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		if err := params.Pool.Ping(r.Context()); err != nil {
			params.Logger.Error("db health", slog.Any("error", err))
			httpx.Problem(w, http.StatusServiceUnavailable, "Database Unavailable", "")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(LoginRateLimiter())
			params.AuthHandler.MountPublicRoutes(r)
		})
		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.Authenticate)
			params.AuthHandler.MountRoutes(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.Authenticate)

		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/rbac", params.RBACHandler.MountRoutes)
		r.Route("/menus", params.MenuHandler.MountRoutes)
	})

	return r
}
