// AngelaMos | 2026
// service.go

package org

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

var ErrSlugExists = errors.New("organization slug already exists")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create is restricted to super admins; the route layer enforces that,
// this only normalizes input.
func (s *Service) Create(
	ctx context.Context,
	req CreateOrganizationRequest,
) (*Organization, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	} else {
		slug = Slugify(slug)
	}

	organization := &Organization{
		ID:   uuid.New().String(),
		Name: strings.TrimSpace(req.Name),
		Slug: slug,
	}

	if err := s.repo.Create(ctx, organization); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrSlugExists
		}
		return nil, err
	}

	return organization, nil
}

// Get resolves an organization visible to the actor. Non-super-admin
// actors can only see their own; anything else reads as missing.
func (s *Service) Get(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) (*Organization, error) {
	if !authz.SameOrganization(actor.Role, actor.OrganizationID, id) {
		return nil, fmt.Errorf("get organization: %w", core.ErrNotFound)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
	req UpdateOrganizationRequest,
) (*Organization, error) {
	if !authz.SameOrganization(actor.Role, actor.OrganizationID, id) {
		return nil, fmt.Errorf("update organization: %w", core.ErrNotFound)
	}
	if !authz.CanUpdateOrganization(actor.Role) {
		return nil, fmt.Errorf("update organization: %w", core.ErrForbidden)
	}

	organization, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	organization.Name = strings.TrimSpace(req.Name)
	if err := s.repo.Update(ctx, organization); err != nil {
		return nil, err
	}

	return organization, nil
}

func (s *Service) List(
	ctx context.Context,
	page, pageSize int,
) ([]Organization, int, error) {
	return s.repo.List(ctx, page, pageSize)
}

// Slugify lower-cases and collapses anything that is not a letter or
// digit into single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
