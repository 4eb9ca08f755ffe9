package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gharinto/platform/internal/rbac"
	_ "github.com/gharinto/platform/testing"
)

func newTestRouter(t *testing.T, svc *Service) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc)
	mw := Middleware{Logger: logger, Service: svc}
	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		handler.MountPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)
			handler.MountRoutes(r)
		})
	})
	return r
}

func TestLoginEndpoint(t *testing.T) {
	svc := newTestService(t, newStubRepo(testUser(t)), &stubGrants{grants: rbac.Grants{
		Roles:       []string{"designer"},
		Permissions: []string{"leads.view", "projects.view"},
	}})
	router := newTestRouter(t, svc)

	body := `{"email":"designer@test.local","password":"correctpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var decoded struct {
		Token string      `json:"token"`
		User  UserPayload `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &decoded))
	assert.NotEmpty(t, decoded.Token)
	assert.Equal(t, "designer@test.local", decoded.User.Email)
	assert.Equal(t, []string{"designer"}, decoded.User.Roles)
	assert.Equal(t, []string{"leads.view", "projects.view"}, decoded.User.Permissions)
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	svc := newTestService(t, newStubRepo(testUser(t)), &stubGrants{})
	router := newTestRouter(t, svc)

	body := `{"email":"designer@test.local","password":"wrongpass1"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "invalid email or password")
}

func TestLoginEndpointValidation(t *testing.T) {
	svc := newTestService(t, newStubRepo(testUser(t)), &stubGrants{})
	router := newTestRouter(t, svc)

	body := `{"email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestMeEndpoint(t *testing.T) {
	svc := newTestService(t, newStubRepo(testUser(t)), &stubGrants{grants: rbac.Grants{
		Roles: []string{"designer"},
	}})
	router := newTestRouter(t, svc)

	_, token, err := svc.Login(context.Background(), "designer@test.local", "correctpass", "", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var payload UserPayload
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, int64(1), payload.ID)
	assert.Equal(t, []string{"designer"}, payload.Roles)
}

func TestMeEndpointWithoutToken(t *testing.T) {
	svc := newTestService(t, newStubRepo(testUser(t)), &stubGrants{})
	router := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	svc := newTestService(t, newStubRepo(testUser(t)), &stubGrants{})
	router := newTestRouter(t, svc)

	_, token, err := svc.Login(context.Background(), "designer@test.local", "correctpass", "", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusNoContent, res.Code)

	// The revoked token no longer authenticates.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
