package rbac

import "time"

// Role represents a high-level permission grouping.
type Role struct {
	ID          int64
	Name        string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission represents an atomic capability, named resource.action.
type Permission struct {
	ID       int64
	Name     string
	Resource string
	Action   string
}

// Grants is the resolved outcome for one user: the roles they hold and the
// union of permissions those roles carry, both deduplicated.
type Grants struct {
	Roles       []string
	Permissions []string
}
