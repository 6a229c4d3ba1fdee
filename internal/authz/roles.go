// AngelaMos | 2026
// roles.go

// Package authz holds the role model and the access predicates consumed
// by request handlers. Decisions always operate on the freshly resolved
// identity, never on anything carried inside a token.
package authz

// Role is a user's access level. There is no global ordering; mutating
// operations declare their permitted roles individually.
type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
	RoleWriteAccess    Role = "write_access"
	RoleReadAccess     Role = "read_access"
)

var allRoles = map[Role]struct{}{
	RoleSuperAdmin:     {},
	RoleAdmin:          {},
	RoleProjectManager: {},
	RoleWriteAccess:    {},
	RoleReadAccess:     {},
}

func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// RequiresOrganization reports whether a user with this role must belong
// to an organization. Only super admins are unscoped.
func (r Role) RequiresOrganization() bool {
	return r != RoleSuperAdmin
}

// AssignableRoles lists the roles an organization admin may grant.
// Super admin is excluded: it can only be provisioned by another super
// admin.
func AssignableRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleProjectManager,
		RoleWriteAccess,
		RoleReadAccess,
	}
}
