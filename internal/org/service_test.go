// AngelaMos | 2026
// service_test.go

package org

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

type fakeRepository struct {
	orgs map[string]*Organization
}

func newFakeRepository(orgs ...*Organization) *fakeRepository {
	r := &fakeRepository{orgs: make(map[string]*Organization)}
	for _, o := range orgs {
		r.orgs[o.ID] = o
	}
	return r
}

func (r *fakeRepository) Create(_ context.Context, organization *Organization) error {
	for _, o := range r.orgs {
		if o.Slug == organization.Slug {
			return core.ErrDuplicateKey
		}
	}
	r.orgs[organization.ID] = organization
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return o, nil
}

func (r *fakeRepository) Update(_ context.Context, organization *Organization) error {
	if _, ok := r.orgs[organization.ID]; !ok {
		return core.ErrNotFound
	}
	r.orgs[organization.ID] = organization
	return nil
}

func (r *fakeRepository) List(
	_ context.Context,
	page, pageSize int,
) ([]Organization, int, error) {
	var out []Organization
	for _, o := range r.orgs {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"  Spaced  Out  ", "spaced-out"},
		{"Already-Slugged", "already-slugged"},
		{"Symbols & Stuff!", "symbols-stuff"},
		{"UPPER", "upper"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestCreateOrganization(t *testing.T) {
	svc := NewService(newFakeRepository())

	organization, err := svc.Create(context.Background(), CreateOrganizationRequest{
		Name: "Acme Corp",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", organization.Name)
	assert.Equal(t, "acme-corp", organization.Slug)
	assert.NotEmpty(t, organization.ID)
}

func TestCreateOrganizationDuplicateSlug(t *testing.T) {
	repo := newFakeRepository(&Organization{ID: "o-1", Name: "Acme", Slug: "acme"})
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateOrganizationRequest{
		Name: "acme",
	})
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestGetOrganizationScoping(t *testing.T) {
	repo := newFakeRepository(&Organization{ID: "o-1", Name: "Acme", Slug: "acme"})
	svc := NewService(repo)

	own := "o-1"
	other := "o-2"

	_, err := svc.Get(context.Background(), &middleware.Identity{
		UserID:         "u-1",
		OrganizationID: &own,
		Role:           authz.RoleReadAccess,
	}, "o-1")
	assert.NoError(t, err)

	// Members of another organization see it as missing.
	_, err = svc.Get(context.Background(), &middleware.Identity{
		UserID:         "u-2",
		OrganizationID: &other,
		Role:           authz.RoleAdmin,
	}, "o-1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.Get(context.Background(), &middleware.Identity{
		UserID: "root",
		Role:   authz.RoleSuperAdmin,
	}, "o-1")
	assert.NoError(t, err)
}

func TestUpdateOrganizationRequiresAdmin(t *testing.T) {
	repo := newFakeRepository(&Organization{ID: "o-1", Name: "Acme", Slug: "acme"})
	svc := NewService(repo)

	own := "o-1"
	_, err := svc.Update(context.Background(), &middleware.Identity{
		UserID:         "u-1",
		OrganizationID: &own,
		Role:           authz.RoleProjectManager,
	}, "o-1", UpdateOrganizationRequest{Name: "New Name"})
	assert.ErrorIs(t, err, core.ErrForbidden)

	updated, err := svc.Update(context.Background(), &middleware.Identity{
		UserID:         "u-2",
		OrganizationID: &own,
		Role:           authz.RoleAdmin,
	}, "o-1", UpdateOrganizationRequest{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
}
