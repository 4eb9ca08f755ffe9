package menu

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/shared"
)

// Handler exposes the navigation endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers menu routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/user", h.userMenus)
}

func (h *Handler) userMenus(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.RespondError(w, httpx.ErrUnauthenticated)
		return
	}
	forest, err := h.service.ForRoles(r.Context(), sess.Roles())
	if err != nil {
		h.logger.Error("compose menu", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"menus": forest})
}
