package roles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
	CreateRole(ctx context.Context, name, displayName string) (Role, error)
	UpdateRole(ctx context.Context, id int64, name, displayName string) (Role, error)
	DeleteRole(ctx context.Context, id int64) (int64, error)
	SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
	AssignRole(ctx context.Context, userID, roleID int64) error
	RemoveRole(ctx context.Context, userID, roleID int64) error
}

// Service handles role business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// CreateRole inserts a new role after trimming and validating its name.
func (s *Service) CreateRole(ctx context.Context, name, displayName string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, fmt.Errorf("roles: name required: %w", httpx.ErrValidation)
	}
	return s.repo.CreateRole(ctx, name, strings.TrimSpace(displayName))
}

// UpdateRole updates an existing role.
func (s *Service) UpdateRole(ctx context.Context, id int64, name, displayName string) (Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Role{}, fmt.Errorf("roles: name required: %w", httpx.ErrValidation)
	}
	role, err := s.repo.UpdateRole(ctx, id, name, strings.TrimSpace(displayName))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Role{}, httpx.ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// DeleteRole removes a role by id.
func (s *Service) DeleteRole(ctx context.Context, id int64) error {
	rows, err := s.repo.DeleteRole(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// SetRolePermissions replaces the permission set of a role. Duplicate ids in
// the input are collapsed before writing.
func (s *Service) SetRolePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	seen := make(map[int64]struct{}, len(permissionIDs))
	unique := make([]int64, 0, len(permissionIDs))
	for _, id := range permissionIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return s.repo.SetRolePermissions(ctx, roleID, unique)
}

// AssignRole assigns a role to the given user.
func (s *Service) AssignRole(ctx context.Context, userID, roleID int64) error {
	return s.repo.AssignRole(ctx, userID, roleID)
}

// RemoveRole removes a role from a user.
func (s *Service) RemoveRole(ctx context.Context, userID, roleID int64) error {
	return s.repo.RemoveRole(ctx, userID, roleID)
}
