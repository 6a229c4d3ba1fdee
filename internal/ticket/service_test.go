// AngelaMos | 2026
// service_test.go

package ticket

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
	"github.com/opsboard/opsboard/internal/project"
)

type fakeRepository struct {
	tickets map[string]*Ticket
}

func newFakeRepository(tickets ...*Ticket) *fakeRepository {
	r := &fakeRepository{tickets: make(map[string]*Ticket)}
	for _, tk := range tickets {
		r.tickets[tk.ID] = tk
	}
	return r
}

func (r *fakeRepository) Create(_ context.Context, ticket *Ticket) error {
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*Ticket, error) {
	tk, ok := r.tickets[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *tk
	return &cp, nil
}

func (r *fakeRepository) Update(_ context.Context, ticket *Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := r.tickets[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeRepository) List(
	_ context.Context,
	params ListTicketsParams,
) ([]Ticket, int, error) {
	var out []Ticket
	for _, tk := range r.tickets {
		if tk.ProjectID == params.ProjectID {
			out = append(out, *tk)
		}
	}
	return out, len(out), nil
}

// fakeProjects resolves projects with the same visibility rules as the
// real service: wrong org reads as missing.
type fakeProjects struct {
	projects map[string]*project.Project
}

func (f *fakeProjects) Get(
	_ context.Context,
	actor *middleware.Identity,
	id string,
) (*project.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if !authz.SameOrganization(actor.Role, actor.OrganizationID, p.OrganizationID) {
		return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
	}
	return p, nil
}

var (
	orgAlpha = "11111111-1111-4111-8111-111111111111"
	orgBeta  = "22222222-2222-4222-8222-222222222222"
)

func identityWithRole(role authz.Role, org string) *middleware.Identity {
	id := &middleware.Identity{UserID: "actor-1", Role: role}
	if org != "" {
		id.OrganizationID = &org
	}
	return id
}

func newTestService(tickets ...*Ticket) (*Service, *fakeRepository) {
	repo := newFakeRepository(tickets...)
	projects := &fakeProjects{projects: map[string]*project.Project{
		"proj-1": {
			ID:             "proj-1",
			OrganizationID: orgAlpha,
			Name:           "Rollout",
			Status:         project.StatusActive,
		},
		"proj-archived": {
			ID:             "proj-archived",
			OrganizationID: orgAlpha,
			Name:           "Old",
			Status:         project.StatusArchived,
		},
	}}
	return NewService(repo, projects, nil), repo
}

func sampleTicket(id string) *Ticket {
	return &Ticket{
		ID:             id,
		ProjectID:      "proj-1",
		OrganizationID: orgAlpha,
		Title:          "Fix login",
		Status:         StatusOpen,
		Priority:       PriorityMedium,
		CreatedBy:      "creator-1",
	}
}

func TestCreateTicket(t *testing.T) {
	svc, _ := newTestService()

	tk, err := svc.Create(
		context.Background(),
		identityWithRole(authz.RoleWriteAccess, orgAlpha),
		"proj-1",
		CreateTicketRequest{Title: "  Fix login  "},
	)
	require.NoError(t, err)

	assert.Equal(t, "Fix login", tk.Title)
	assert.Equal(t, "proj-1", tk.ProjectID)
	assert.Equal(t, orgAlpha, tk.OrganizationID)
	assert.Equal(t, StatusOpen, tk.Status)
	assert.Equal(t, PriorityMedium, tk.Priority)
}

func TestCreateTicketReadAccessForbidden(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(
		context.Background(),
		identityWithRole(authz.RoleReadAccess, orgAlpha),
		"proj-1",
		CreateTicketRequest{Title: "Nope"},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestCreateTicketArchivedProject(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(
		context.Background(),
		identityWithRole(authz.RoleAdmin, orgAlpha),
		"proj-archived",
		CreateTicketRequest{Title: "Too late"},
	)
	assert.ErrorIs(t, err, project.ErrProjectArchived)
}

func TestCreateTicketCrossOrgProject(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(
		context.Background(),
		identityWithRole(authz.RoleAdmin, orgBeta),
		"proj-1",
		CreateTicketRequest{Title: "Not yours"},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetTicketCrossOrgReadsAsMissing(t *testing.T) {
	svc, _ := newTestService(sampleTicket("t-1"))

	_, err := svc.Get(
		context.Background(),
		identityWithRole(authz.RoleAdmin, orgBeta),
		"t-1",
	)
	assert.ErrorIs(t, err, core.ErrNotFound)

	got, err := svc.Get(
		context.Background(),
		identityWithRole(authz.RoleReadAccess, orgAlpha),
		"t-1",
	)
	require.NoError(t, err)
	assert.Equal(t, "t-1", got.ID)
}

func TestUpdateTicket(t *testing.T) {
	svc, repo := newTestService(sampleTicket("t-2"))

	status := "resolved"
	got, err := svc.Update(
		context.Background(),
		identityWithRole(authz.RoleWriteAccess, orgAlpha),
		"t-2",
		UpdateTicketRequest{Status: &status},
	)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, got.Status)
	assert.Equal(t, StatusResolved, repo.tickets["t-2"].Status)
}

func TestUpdateTicketReadAccessForbidden(t *testing.T) {
	svc, _ := newTestService(sampleTicket("t-3"))

	title := "Renamed"
	_, err := svc.Update(
		context.Background(),
		identityWithRole(authz.RoleReadAccess, orgAlpha),
		"t-3",
		UpdateTicketRequest{Title: &title},
	)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestDeleteTicketPermissions(t *testing.T) {
	// Write access can create and edit but not delete.
	svc, repo := newTestService(sampleTicket("t-4"))

	err := svc.Delete(
		context.Background(),
		identityWithRole(authz.RoleWriteAccess, orgAlpha),
		"t-4",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	err = svc.Delete(
		context.Background(),
		identityWithRole(authz.RoleProjectManager, orgAlpha),
		"t-4",
	)
	require.NoError(t, err)
	assert.Empty(t, repo.tickets)
}

func TestListTicketsScopedByProject(t *testing.T) {
	svc, _ := newTestService(sampleTicket("t-5"))

	_, _, err := svc.List(
		context.Background(),
		identityWithRole(authz.RoleReadAccess, orgBeta),
		ListTicketsParams{ProjectID: "proj-1", Page: 1, PageSize: 10},
	)
	assert.ErrorIs(t, err, core.ErrNotFound)

	tickets, total, err := svc.List(
		context.Background(),
		identityWithRole(authz.RoleReadAccess, orgAlpha),
		ListTicketsParams{ProjectID: "proj-1", Page: 1, PageSize: 10},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, tickets, 1)
}
