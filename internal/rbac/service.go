package rbac

import (
	"context"
	"log/slog"
	"sort"

	"github.com/gharinto/platform/internal/shared"
)

// RepositoryPort defines data access methods for grant resolution.
type RepositoryPort interface {
	UserGrants(ctx context.Context, userID int64) ([]GrantRow, error)
	ListPermissions(ctx context.Context) ([]Permission, error)
}

// Service resolves effective grants for users.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// EffectiveGrants resolves the deduplicated role and permission name sets for
// a user. A user with no role assignments resolves to empty sets; that is a
// valid powerless session, not an error. Errors surface only on storage
// failure.
func (s *Service) EffectiveGrants(ctx context.Context, userID int64) (Grants, error) {
	rows, err := s.repo.UserGrants(ctx, userID)
	if err != nil {
		return Grants{}, err
	}

	roleSet := make(map[string]struct{})
	permSet := make(map[string]struct{})
	for _, row := range rows {
		roleSet[row.RoleName] = struct{}{}
		if row.PermissionName != nil {
			permSet[*row.PermissionName] = struct{}{}
		}
	}

	grants := Grants{
		Roles:       make([]string, 0, len(roleSet)),
		Permissions: make([]string, 0, len(permSet)),
	}
	for r := range roleSet {
		grants.Roles = append(grants.Roles, r)
	}
	for p := range permSet {
		grants.Permissions = append(grants.Permissions, p)
	}
	sort.Strings(grants.Roles)
	sort.Strings(grants.Permissions)
	return grants, nil
}

// ListPermissions returns the permission reference table.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.repo.ListPermissions(ctx)
}

// ValidateScopes checks every permission literal referenced in code against
// the reference table and logs the ones that do not exist. Run once at
// startup; a typo in a handler's required permission otherwise manifests as a
// permanent silent denial.
func (s *Service) ValidateScopes(ctx context.Context, logger *slog.Logger) error {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		known[p.Name] = struct{}{}
	}
	for _, scope := range shared.CoreScopes() {
		if _, ok := known[scope]; !ok && logger != nil {
			logger.Warn("permission literal missing from reference table", slog.String("permission", scope))
		}
	}
	return nil
}
