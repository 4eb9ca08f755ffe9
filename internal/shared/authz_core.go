package shared

// Wildcard grants. Either one short-circuits every authorization check; the
// session computes a single SuperAdmin flag from them at resolution time.
const (
	RoleSuperAdmin = "super_admin"
	PermWildcard   = "*"
)

// Core platform permissions.
const (
	PermUsersView = "users.view"
	PermUsersEdit = "users.edit"

	PermRolesView = "roles.view"
	PermRolesEdit = "roles.edit"

	PermPermissionsView = "permissions.view"

	PermProjectsView = "projects.view"
	PermProjectsEdit = "projects.edit"

	PermLeadsView = "leads.view"
	PermLeadsEdit = "leads.edit"

	PermMaterialsView = "materials.view"
	PermVendorsView   = "vendors.view"

	PermQuotationsView = "quotations.view"
	PermQuotationsEdit = "quotations.edit"

	PermAnalyticsView = "analytics.view"
)

// CoreScopes lists every permission literal referenced by handlers. Startup
// validation checks these against the permissions reference table so typos
// surface at boot rather than as silent denials.
func CoreScopes() []string {
	return []string{
		PermUsersView,
		PermUsersEdit,
		PermRolesView,
		PermRolesEdit,
		PermPermissionsView,
		PermProjectsView,
		PermProjectsEdit,
		PermLeadsView,
		PermLeadsEdit,
		PermMaterialsView,
		PermVendorsView,
		PermQuotationsView,
		PermQuotationsEdit,
		PermAnalyticsView,
	}
}
