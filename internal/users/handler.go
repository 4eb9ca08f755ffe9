package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/rbac"
	"github.com/gharinto/platform/internal/shared"
)

// Handler exposes user endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/profile", h.profile)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermUsersView))
		r.Get("/", h.listUsers)
	})
}

type profilePayload struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// profile serves the caller's resolved identity. Everything needed is already
// on the request session.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.RespondError(w, httpx.ErrUnauthenticated)
		return
	}
	httpx.JSON(w, http.StatusOK, profilePayload{
		ID:          sess.UserID,
		Email:       sess.Email,
		FirstName:   sess.FirstName,
		LastName:    sess.LastName,
		Roles:       sess.Roles(),
		Permissions: sess.Permissions(),
	})
}

type userPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsActive  bool   `json:"isActive"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	payload := make([]userPayload, len(list))
	for i, u := range list {
		payload[i] = userPayload{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, IsActive: u.IsActive}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"users": payload, "total": len(payload)})
}
