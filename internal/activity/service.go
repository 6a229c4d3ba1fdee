// AngelaMos | 2026
// service.go

package activity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/opsboard/opsboard/internal/authz"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an entry. Failures are logged and swallowed: the audit
// trail must never fail the operation it documents.
func (s *Service) Record(ctx context.Context, entry Entry) {
	entry.ID = uuid.New().String()

	if err := s.repo.Insert(ctx, &entry); err != nil {
		slog.Warn("failed to record activity",
			"action", entry.Action,
			"actor_id", entry.ActorID,
			"error", err,
		)
	}
}

// List returns entries visible to the caller: super admins see across
// organizations, everyone else only their own.
func (s *Service) List(
	ctx context.Context,
	role authz.Role,
	identityOrg *string,
	page, pageSize int,
) ([]Entry, int, error) {
	params := ListParams{Page: page, PageSize: pageSize}

	if role != authz.RoleSuperAdmin {
		params.OrganizationID = identityOrg
	}

	return s.repo.List(ctx, params)
}
