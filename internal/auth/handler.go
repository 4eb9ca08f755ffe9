package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountPublicRoutes registers routes reachable without a session.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

// MountRoutes registers routes behind the auth middleware.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserPayload is the wire shape of a resolved user, matching the frontend
// contract: camelCase fields, roles and permissions as sorted string arrays.
type UserPayload struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// NewUserPayload converts a resolved session into its wire shape.
func NewUserPayload(sess *shared.Session) UserPayload {
	return UserPayload{
		ID:          sess.UserID,
		Email:       sess.Email,
		FirstName:   sess.FirstName,
		LastName:    sess.LastName,
		Roles:       sess.Roles(),
		Permissions: sess.Permissions(),
	}
}

type loginResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "email and password are required")
		return
	}

	sess, token, err := h.service.Login(r.Context(), req.Email, req.Password, r.RemoteAddr, r.UserAgent())
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			// Same body whether the account is missing, inactive or the
			// password is wrong.
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid email or password")
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, loginResponse{Token: token, User: NewUserPayload(sess)})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if err := h.service.Logout(r.Context(), sess); err != nil {
		h.logger.Error("logout", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		httpx.RespondError(w, httpx.ErrUnauthenticated)
		return
	}
	httpx.JSON(w, http.StatusOK, NewUserPayload(sess))
}
