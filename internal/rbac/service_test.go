package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	grants []GrantRow
	perms  []Permission
	err    error
}

func (s *stubRepo) UserGrants(ctx context.Context, userID int64) ([]GrantRow, error) {
	return s.grants, s.err
}

func (s *stubRepo) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.perms, s.err
}

func strp(v string) *string { return &v }

func TestEffectiveGrantsDeduplicates(t *testing.T) {
	// admin grants users.view; finance_manager grants finance.view and
	// users.view again. The union has exactly two permissions.
	svc := NewService(&stubRepo{grants: []GrantRow{
		{RoleName: "admin", PermissionName: strp("users.view")},
		{RoleName: "finance_manager", PermissionName: strp("finance.view")},
		{RoleName: "finance_manager", PermissionName: strp("users.view")},
	}})

	grants, err := svc.EffectiveGrants(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "finance_manager"}, grants.Roles)
	assert.Equal(t, []string{"finance.view", "users.view"}, grants.Permissions)
}

func TestEffectiveGrantsNoRoles(t *testing.T) {
	svc := NewService(&stubRepo{})

	grants, err := svc.EffectiveGrants(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, grants.Roles)
	assert.Empty(t, grants.Permissions)
}

func TestEffectiveGrantsRoleWithoutPermissions(t *testing.T) {
	// A role with no attached permissions still counts as a held role.
	svc := NewService(&stubRepo{grants: []GrantRow{
		{RoleName: "customer", PermissionName: nil},
	}})

	grants, err := svc.EffectiveGrants(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"customer"}, grants.Roles)
	assert.Empty(t, grants.Permissions)
}

func TestEffectiveGrantsStorageFailure(t *testing.T) {
	wantErr := errors.New("connection refused")
	svc := NewService(&stubRepo{err: wantErr})

	_, err := svc.EffectiveGrants(context.Background(), 7)
	require.ErrorIs(t, err, wantErr)
}

func TestEffectiveGrantsScenario(t *testing.T) {
	// designer holds projects.view and leads.view.
	svc := NewService(&stubRepo{grants: []GrantRow{
		{RoleName: "designer", PermissionName: strp("projects.view")},
		{RoleName: "designer", PermissionName: strp("leads.view")},
	}})

	grants, err := svc.EffectiveGrants(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"designer"}, grants.Roles)
	assert.Equal(t, []string{"leads.view", "projects.view"}, grants.Permissions)
}
