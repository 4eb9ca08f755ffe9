package shared

import (
	"sort"
	"time"
)

// Session holds the per-request resolved identity: the user, the roles they
// hold, and the deduplicated permission set granted through those roles. It is
// computed once at the authentication boundary and read-only afterwards; it is
// never shared across requests.
type Session struct {
	UserID     int64
	Email      string
	FirstName  string
	LastName   string
	TokenID    string
	// TokenExpiry is the credential's expiry; logout denylists the token id
	// only until then.
	TokenExpiry time.Time
	SuperAdmin  bool

	roles       map[string]struct{}
	permissions map[string]struct{}
}

// NewSession builds a resolved session from role and permission name lists.
// Duplicate names collapse into sets. The super-admin flag is computed here so
// the wildcard convention lives in exactly one place.
func NewSession(userID int64, email, firstName, lastName, tokenID string, roleNames, permissionNames []string) *Session {
	s := &Session{
		UserID:      userID,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		TokenID:     tokenID,
		roles:       make(map[string]struct{}, len(roleNames)),
		permissions: make(map[string]struct{}, len(permissionNames)),
	}
	for _, r := range roleNames {
		s.roles[r] = struct{}{}
	}
	for _, p := range permissionNames {
		s.permissions[p] = struct{}{}
	}
	_, wildcardRole := s.roles[RoleSuperAdmin]
	_, wildcardPerm := s.permissions[PermWildcard]
	s.SuperAdmin = wildcardRole || wildcardPerm
	return s
}

// HasRole reports whether the session holds the named role.
func (s *Session) HasRole(name string) bool {
	_, ok := s.roles[name]
	return ok
}

// HasPermission reports whether the named permission is in the resolved set.
func (s *Session) HasPermission(name string) bool {
	_, ok := s.permissions[name]
	return ok
}

// Roles returns the role names sorted for stable JSON output.
func (s *Session) Roles() []string {
	out := make([]string, 0, len(s.roles))
	for r := range s.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Permissions returns the permission names sorted for stable JSON output.
func (s *Session) Permissions() []string {
	out := make([]string, 0, len(s.permissions))
	for p := range s.permissions {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
