// AngelaMos | 2026
// service.go

package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/opsboard/opsboard/internal/activity"
	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

var ErrProjectArchived = errors.New("project is archived")

type Service struct {
	repo     Repository
	activity *activity.Service
}

func NewService(repo Repository, recorder *activity.Service) *Service {
	return &Service{repo: repo, activity: recorder}
}

func (s *Service) Create(
	ctx context.Context,
	actor *middleware.Identity,
	req CreateProjectRequest,
) (*Project, error) {
	if !authz.CanCreateProjects(actor.Role) {
		return nil, fmt.Errorf("create project: %w", core.ErrForbidden)
	}
	if actor.OrganizationID == nil {
		return nil, fmt.Errorf(
			"create project: actor has no organization: %w", core.ErrInvalidInput,
		)
	}

	project := &Project{
		ID:             uuid.New().String(),
		OrganizationID: *actor.OrganizationID,
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Status:         StatusActive,
		CreatedBy:      actor.UserID,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.record(ctx, actor, activity.ActionProjectCreated, project)

	return project, nil
}

// Get resolves a project the actor can see. Projects in other
// organizations read as missing, never as forbidden.
func (s *Service) Get(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) (*Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.SameOrganization(
		actor.Role, actor.OrganizationID, project.OrganizationID,
	) {
		return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
	}

	return project, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
	req UpdateProjectRequest,
) (*Project, error) {
	project, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanUpdateProjects(actor.Role) {
		return nil, fmt.Errorf("update project: %w", core.ErrForbidden)
	}
	if project.Archived() {
		return nil, ErrProjectArchived
	}

	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.record(ctx, actor, activity.ActionProjectUpdated, project)

	return project, nil
}

func (s *Service) Archive(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) (*Project, error) {
	project, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanArchiveProject(actor.Role) {
		return nil, fmt.Errorf("archive project: %w", core.ErrForbidden)
	}

	// Archiving an archived project is a no-op.
	if project.Archived() {
		return project, nil
	}

	if err := s.repo.SetStatus(ctx, id, StatusArchived); err != nil {
		return nil, err
	}

	project.Status = StatusArchived
	s.record(ctx, actor, activity.ActionProjectArchived, project)

	return s.repo.GetByID(ctx, id)
}

// Unarchive is deliberately narrower than Archive: project managers
// can put a project away but only admins can bring it back.
func (s *Service) Unarchive(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) (*Project, error) {
	project, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanUnarchiveProject(actor.Role) {
		return nil, fmt.Errorf("unarchive project: %w", core.ErrForbidden)
	}

	if !project.Archived() {
		return project, nil
	}

	if err := s.repo.SetStatus(ctx, id, StatusActive); err != nil {
		return nil, err
	}

	project.Status = StatusActive
	project.ArchivedAt = nil
	s.record(ctx, actor, activity.ActionProjectUnarchived, project)

	return project, nil
}

func (s *Service) List(
	ctx context.Context,
	actor *middleware.Identity,
	params ListProjectsParams,
) ([]Project, int, error) {
	if actor.Role != authz.RoleSuperAdmin || params.OrganizationID == "" {
		if actor.OrganizationID == nil {
			return nil, 0, fmt.Errorf(
				"list projects: organization required: %w", core.ErrInvalidInput,
			)
		}
		params.OrganizationID = *actor.OrganizationID
	}

	return s.repo.List(ctx, params)
}

func (s *Service) record(
	ctx context.Context,
	actor *middleware.Identity,
	action string,
	project *Project,
) {
	if s.activity == nil {
		return
	}

	s.activity.Record(ctx, activity.Entry{
		OrganizationID: &project.OrganizationID,
		ActorID:        actor.UserID,
		Action:         action,
		EntityType:     activity.EntityProject,
		EntityID:       &project.ID,
	})
}
