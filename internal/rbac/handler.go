package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/shared"
)

// Handler exposes RBAC endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers RBAC routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/user-permissions", h.userPermissions)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermPermissionsView))
		r.Get("/permissions", h.listPermissions)
	})
}

type userPermissionsResponse struct {
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// userPermissions returns the caller's own resolved grants. The session is
// already resolved by the auth middleware, so this is a pure read.
func (h *Handler) userPermissions(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.RespondError(w, httpx.ErrUnauthenticated)
		return
	}
	httpx.JSON(w, http.StatusOK, userPermissionsResponse{
		Roles:       sess.Roles(),
		Permissions: sess.Permissions(),
	})
}

type permissionPayload struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

func (h *Handler) listPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.ListPermissions(r.Context())
	if err != nil {
		h.logger.Error("list permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	payload := make([]permissionPayload, len(perms))
	for i, p := range perms {
		payload[i] = permissionPayload{ID: p.ID, Name: p.Name, Resource: p.Resource, Action: p.Action}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"permissions": payload})
}
