// AngelaMos | 2026
// policy.go

package authz

// SameOrganization reports whether an identity scoped to identityOrg may
// touch a resource owned by resourceOrg. Super admins are exempt from
// scoping. Callers surface a negative answer as not-found rather than
// forbidden, so resources in other organizations stay invisible.
func SameOrganization(role Role, identityOrg *string, resourceOrg string) bool {
	if role == RoleSuperAdmin {
		return true
	}
	return identityOrg != nil && *identityOrg == resourceOrg
}

func roleIn(r Role, allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

func CanManageOrganizations(r Role) bool {
	return r == RoleSuperAdmin
}

func CanUpdateOrganization(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin)
}

func CanManageUsers(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin)
}

func CanCreateProjects(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin, RoleProjectManager)
}

func CanUpdateProjects(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin, RoleProjectManager)
}

func CanArchiveProject(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin, RoleProjectManager)
}

// Unarchiving is deliberately narrower than archiving.
func CanUnarchiveProject(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin)
}

func CanWriteTickets(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin, RoleProjectManager, RoleWriteAccess)
}

func CanDeleteTickets(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin, RoleProjectManager)
}

func CanViewActivity(r Role) bool {
	return roleIn(r, RoleSuperAdmin, RoleAdmin, RoleProjectManager)
}
