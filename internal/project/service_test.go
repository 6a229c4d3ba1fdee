// AngelaMos | 2026
// service_test.go

package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

type fakeRepository struct {
	projects map[string]*Project
}

func newFakeRepository(projects ...*Project) *fakeRepository {
	r := &fakeRepository{projects: make(map[string]*Project)}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

func (r *fakeRepository) Create(_ context.Context, project *Project) error {
	r.projects[project.ID] = project
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepository) Update(_ context.Context, project *Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *fakeRepository) SetStatus(
	_ context.Context,
	id string,
	status Status,
) error {
	p, ok := r.projects[id]
	if !ok {
		return core.ErrNotFound
	}
	p.Status = status
	if status == StatusArchived {
		now := time.Now()
		p.ArchivedAt = &now
	} else {
		p.ArchivedAt = nil
	}
	return nil
}

func (r *fakeRepository) List(
	_ context.Context,
	params ListProjectsParams,
) ([]Project, int, error) {
	var out []Project
	for _, p := range r.projects {
		if p.OrganizationID != params.OrganizationID {
			continue
		}
		if params.Status != "" && string(p.Status) != params.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

var (
	orgAlpha = "11111111-1111-4111-8111-111111111111"
	orgBeta  = "22222222-2222-4222-8222-222222222222"
)

func identityWithRole(role authz.Role, org string) *middleware.Identity {
	id := &middleware.Identity{
		UserID: "actor-1",
		Role:   role,
	}
	if org != "" {
		id.OrganizationID = &org
	}
	return id
}

func activeProject(id, org string) *Project {
	return &Project{
		ID:             id,
		OrganizationID: org,
		Name:           "Rollout",
		Status:         StatusActive,
		CreatedBy:      "creator-1",
	}
}

func TestCreateProject(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	p, err := svc.Create(
		context.Background(),
		identityWithRole(authz.RoleProjectManager, orgAlpha),
		CreateProjectRequest{Name: "  Rollout  ", Description: "q3 work"},
	)
	require.NoError(t, err)

	assert.Equal(t, "Rollout", p.Name)
	assert.Equal(t, orgAlpha, p.OrganizationID)
	assert.Equal(t, StatusActive, p.Status)
	assert.Equal(t, "actor-1", p.CreatedBy)
}

func TestCreateProjectForbiddenForWriteAccess(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)

	_, err := svc.Create(
		context.Background(),
		identityWithRole(authz.RoleWriteAccess, orgAlpha),
		CreateProjectRequest{Name: "Nope"},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestGetProjectCrossOrgReadsAsMissing(t *testing.T) {
	repo := newFakeRepository(activeProject("p-1", orgBeta))
	svc := NewService(repo, nil)

	_, err := svc.Get(
		context.Background(),
		identityWithRole(authz.RoleAdmin, orgAlpha),
		"p-1",
	)
	assert.ErrorIs(t, err, core.ErrNotFound)

	got, err := svc.Get(
		context.Background(),
		identityWithRole(authz.RoleSuperAdmin, ""),
		"p-1",
	)
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)
}

func TestUpdateArchivedProjectRejected(t *testing.T) {
	p := activeProject("p-2", orgAlpha)
	p.Status = StatusArchived
	svc := NewService(newFakeRepository(p), nil)

	name := "Renamed"
	_, err := svc.Update(
		context.Background(),
		identityWithRole(authz.RoleAdmin, orgAlpha),
		"p-2",
		UpdateProjectRequest{Name: &name},
	)
	assert.ErrorIs(t, err, ErrProjectArchived)
}

func TestArchivePermissions(t *testing.T) {
	tests := []struct {
		role    authz.Role
		wantErr bool
	}{
		{authz.RoleSuperAdmin, false},
		{authz.RoleAdmin, false},
		{authz.RoleProjectManager, false},
		{authz.RoleWriteAccess, true},
		{authz.RoleReadAccess, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			repo := newFakeRepository(activeProject("p-3", orgAlpha))
			svc := NewService(repo, nil)

			org := orgAlpha
			if tt.role == authz.RoleSuperAdmin {
				org = ""
			}

			_, err := svc.Archive(
				context.Background(),
				identityWithRole(tt.role, org),
				"p-3",
			)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrForbidden)
			} else {
				require.NoError(t, err)
				assert.Equal(t, StatusArchived, repo.projects["p-3"].Status)
			}
		})
	}
}

func TestUnarchiveNarrowerThanArchive(t *testing.T) {
	archived := activeProject("p-4", orgAlpha)
	archived.Status = StatusArchived

	// A project manager can archive but not unarchive.
	svc := NewService(newFakeRepository(archived), nil)
	_, err := svc.Unarchive(
		context.Background(),
		identityWithRole(authz.RoleProjectManager, orgAlpha),
		"p-4",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	got, err := svc.Unarchive(
		context.Background(),
		identityWithRole(authz.RoleAdmin, orgAlpha),
		"p-4",
	)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, got.Status)
	assert.Nil(t, got.ArchivedAt)
}

func TestArchiveIdempotent(t *testing.T) {
	archived := activeProject("p-5", orgAlpha)
	archived.Status = StatusArchived
	svc := NewService(newFakeRepository(archived), nil)

	got, err := svc.Archive(
		context.Background(),
		identityWithRole(authz.RoleAdmin, orgAlpha),
		"p-5",
	)
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, got.Status)
}

func TestListProjectsScopedToOwnOrg(t *testing.T) {
	repo := newFakeRepository(
		activeProject("p-6", orgAlpha),
		activeProject("p-7", orgBeta),
	)
	svc := NewService(repo, nil)

	projects, total, err := svc.List(
		context.Background(),
		identityWithRole(authz.RoleReadAccess, orgAlpha),
		ListProjectsParams{OrganizationID: orgBeta, Page: 1, PageSize: 10},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, projects, 1)
	assert.Equal(t, "p-6", projects[0].ID)
}
