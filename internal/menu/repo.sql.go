package menu

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// VisibleForRoles returns the active menu items visible to at least one of
// the given roles, distinct by item id. Absence of a role_menus row means no
// access.
func (r *Repository) VisibleForRoles(ctx context.Context, roleNames []string) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT m.id, m.name, m.display_name, m.icon, m.path, m.parent_id, m.sort_order
		FROM menu_items m
		JOIN role_menus rm ON rm.menu_id = m.id AND rm.can_view
		JOIN roles r ON r.id = rm.role_id
		WHERE m.is_active AND r.name = ANY($1)`, roleNames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.DisplayName, &it.Icon, &it.Path, &it.ParentID, &it.SortOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
