// AngelaMos | 2026
// service.go

package ticket

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/opsboard/opsboard/internal/activity"
	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
	"github.com/opsboard/opsboard/internal/project"
)

// ProjectResolver looks up a project the actor is allowed to see.
type ProjectResolver interface {
	Get(
		ctx context.Context,
		actor *middleware.Identity,
		id string,
	) (*project.Project, error)
}

type Service struct {
	repo     Repository
	projects ProjectResolver
	activity *activity.Service
}

func NewService(
	repo Repository,
	projects ProjectResolver,
	recorder *activity.Service,
) *Service {
	return &Service{repo: repo, projects: projects, activity: recorder}
}

func (s *Service) Create(
	ctx context.Context,
	actor *middleware.Identity,
	projectID string,
	req CreateTicketRequest,
) (*Ticket, error) {
	if !authz.CanWriteTickets(actor.Role) {
		return nil, fmt.Errorf("create ticket: %w", core.ErrForbidden)
	}

	// Resolving the project also enforces organization scope.
	proj, err := s.projects.Get(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if proj.Archived() {
		return nil, project.ErrProjectArchived
	}

	priority := PriorityMedium
	if req.Priority != "" {
		priority = Priority(req.Priority)
	}

	ticket := &Ticket{
		ID:             uuid.New().String(),
		ProjectID:      proj.ID,
		OrganizationID: proj.OrganizationID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Status:         StatusOpen,
		Priority:       priority,
		AssigneeID:     req.AssigneeID,
		CreatedBy:      actor.UserID,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.record(ctx, actor, activity.ActionTicketCreated, ticket)

	return ticket, nil
}

// Get resolves a ticket visible to the actor. Any authenticated member
// of the ticket's organization can read it.
func (s *Service) Get(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) (*Ticket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.SameOrganization(
		actor.Role, actor.OrganizationID, ticket.OrganizationID,
	) {
		return nil, fmt.Errorf("get ticket: %w", core.ErrNotFound)
	}

	return ticket, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
	req UpdateTicketRequest,
) (*Ticket, error) {
	ticket, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanWriteTickets(actor.Role) {
		return nil, fmt.Errorf("update ticket: %w", core.ErrForbidden)
	}

	if req.Title != nil {
		ticket.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Status != nil {
		ticket.Status = Status(*req.Status)
	}
	if req.Priority != nil {
		ticket.Priority = Priority(*req.Priority)
	}
	if req.AssigneeID != nil {
		ticket.AssigneeID = req.AssigneeID
	}

	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.record(ctx, actor, activity.ActionTicketUpdated, ticket)

	return ticket, nil
}

func (s *Service) Delete(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) error {
	ticket, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteTickets(actor.Role) {
		return fmt.Errorf("delete ticket: %w", core.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actor, activity.ActionTicketDeleted, ticket)

	return nil
}

func (s *Service) List(
	ctx context.Context,
	actor *middleware.Identity,
	params ListTicketsParams,
) ([]Ticket, int, error) {
	// Scope check rides on the project lookup.
	if _, err := s.projects.Get(ctx, actor, params.ProjectID); err != nil {
		return nil, 0, err
	}

	return s.repo.List(ctx, params)
}

func (s *Service) record(
	ctx context.Context,
	actor *middleware.Identity,
	action string,
	ticket *Ticket,
) {
	if s.activity == nil {
		return
	}

	s.activity.Record(ctx, activity.Entry{
		OrganizationID: &ticket.OrganizationID,
		ActorID:        actor.UserID,
		Action:         action,
		EntityType:     activity.EntityTicket,
		EntityID:       &ticket.ID,
	})
}
