package menu

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gharinto/platform/internal/shared"
	_ "github.com/gharinto/platform/testing"
)

type stubRepo struct {
	items     []Item
	seenRoles []string
}

func (s *stubRepo) VisibleForRoles(ctx context.Context, roleNames []string) ([]Item, error) {
	s.seenRoles = roleNames
	return s.items, nil
}

func newMenuRouter(repo RepositoryPort) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo))
	r := chi.NewRouter()
	r.Route("/menus", handler.MountRoutes)
	return r
}

func TestUserMenusComposesForest(t *testing.T) {
	repo := &stubRepo{items: []Item{
		{ID: 2, Name: "projects", DisplayName: "Projects", Path: "/projects", SortOrder: 2},
		{ID: 1, Name: "dashboard", DisplayName: "Dashboard", Path: "/", SortOrder: 1},
	}}
	router := newMenuRouter(repo)

	sess := shared.NewSession(1, "designer@test.local", "Dana", "Designer", "tok", []string{"designer"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/menus/user", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}
	var decoded struct {
		Menus []*Node `json:"menus"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Menus) != 2 {
		t.Fatalf("expected 2 roots got %d", len(decoded.Menus))
	}
	if decoded.Menus[0].Name != "dashboard" || decoded.Menus[1].Name != "projects" {
		t.Fatalf("unexpected order %s, %s", decoded.Menus[0].Name, decoded.Menus[1].Name)
	}
	if len(repo.seenRoles) != 1 || repo.seenRoles[0] != "designer" {
		t.Fatalf("expected query filtered by designer role, got %v", repo.seenRoles)
	}
}

func TestUserMenusEmptyForPowerlessSession(t *testing.T) {
	repo := &stubRepo{}
	router := newMenuRouter(repo)

	sess := shared.NewSession(1, "new@test.local", "New", "User", "tok", nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/menus/user", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}
	if res.Body.String() == "" || res.Body.String()[0] != '{' {
		t.Fatalf("expected JSON body, got %q", res.Body.String())
	}
	if repo.seenRoles != nil {
		t.Fatalf("expected no store access for a session without roles")
	}
}

func TestUserMenusWithoutSession(t *testing.T) {
	router := newMenuRouter(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/menus/user", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", res.Code)
	}
}
