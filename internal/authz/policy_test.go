// AngelaMos | 2026
// policy_test.go

package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameOrganization(t *testing.T) {
	orgA := "org-a"
	orgB := "org-b"

	tests := []struct {
		name        string
		role        Role
		identityOrg *string
		resourceOrg string
		want        bool
	}{
		{"super admin crosses orgs", RoleSuperAdmin, nil, "org-a", true},
		{"super admin with org set", RoleSuperAdmin, &orgB, "org-a", true},
		{"admin same org", RoleAdmin, &orgA, "org-a", true},
		{"admin other org", RoleAdmin, &orgA, "org-b", false},
		{"member without org", RoleReadAccess, nil, "org-a", false},
		{"write access same org", RoleWriteAccess, &orgB, "org-b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SameOrganization(tt.role, tt.identityOrg, tt.resourceOrg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{
		RoleSuperAdmin,
		RoleAdmin,
		RoleProjectManager,
		RoleWriteAccess,
		RoleReadAccess,
	} {
		assert.True(t, role.Valid(), role)
	}

	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestRequiresOrganization(t *testing.T) {
	assert.False(t, RoleSuperAdmin.RequiresOrganization())
	assert.True(t, RoleAdmin.RequiresOrganization())
	assert.True(t, RoleReadAccess.RequiresOrganization())
}

func TestAssignableRolesExcludeSuperAdmin(t *testing.T) {
	for _, role := range AssignableRoles() {
		assert.NotEqual(t, RoleSuperAdmin, role)
	}
	assert.Len(t, AssignableRoles(), 4)
}

func TestProjectLifecyclePermissions(t *testing.T) {
	tests := []struct {
		role          Role
		canArchive    bool
		canUnarchive  bool
		canCreate     bool
		canWriteTix   bool
		canDeleteTix  bool
		canManageUser bool
	}{
		{RoleSuperAdmin, true, true, true, true, true, true},
		{RoleAdmin, true, true, true, true, true, true},
		{RoleProjectManager, true, false, true, true, true, false},
		{RoleWriteAccess, false, false, false, true, false, false},
		{RoleReadAccess, false, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.canArchive, CanArchiveProject(tt.role))
			assert.Equal(t, tt.canUnarchive, CanUnarchiveProject(tt.role))
			assert.Equal(t, tt.canCreate, CanCreateProjects(tt.role))
			assert.Equal(t, tt.canWriteTix, CanWriteTickets(tt.role))
			assert.Equal(t, tt.canDeleteTix, CanDeleteTickets(tt.role))
			assert.Equal(t, tt.canManageUser, CanManageUsers(tt.role))
		})
	}
}

func TestOrganizationPermissions(t *testing.T) {
	assert.True(t, CanManageOrganizations(RoleSuperAdmin))
	assert.False(t, CanManageOrganizations(RoleAdmin))

	assert.True(t, CanUpdateOrganization(RoleSuperAdmin))
	assert.True(t, CanUpdateOrganization(RoleAdmin))
	assert.False(t, CanUpdateOrganization(RoleProjectManager))
}
