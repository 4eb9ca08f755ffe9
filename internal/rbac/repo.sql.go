package rbac

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GrantRow is one row of the user grant join. PermissionName is nil for a
// role that carries no permissions; the role itself still counts.
type GrantRow struct {
	RoleName       string
	PermissionName *string
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// UserGrants returns the raw role/permission join for a user. The join can
// legitimately repeat a permission name when two held roles grant it; the
// service deduplicates.
func (r *Repository) UserGrants(ctx context.Context, userID int64) ([]GrantRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.name, p.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		LEFT JOIN role_permissions rp ON rp.role_id = r.id
		LEFT JOIN permissions p ON p.id = rp.permission_id
		WHERE ur.user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var grants []GrantRow
	for rows.Next() {
		var g GrantRow
		if err := rows.Scan(&g.RoleName, &g.PermissionName); err != nil {
			return nil, err
		}
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grants, nil
}

// ListPermissions returns all permissions ordered by name.
func (r *Repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, resource, action FROM permissions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Resource, &p.Action); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return perms, nil
}
