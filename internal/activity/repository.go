// AngelaMos | 2026
// repository.go

package activity

import (
	"context"
	"fmt"

	"github.com/opsboard/opsboard/internal/core"
)

type ListParams struct {
	OrganizationID *string
	Page           int
	PageSize       int
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.PageSize > 200 {
		p.PageSize = 200
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	List(ctx context.Context, params ListParams) ([]Entry, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO activity_log (
			id, organization_id, actor_id, action, entity_type, entity_id
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &entry.CreatedAt, query,
		entry.ID,
		entry.OrganizationID,
		entry.ActorID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
	)
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Entry, int, error) {
	params.Normalize()

	where := "TRUE"
	args := []any{}
	if params.OrganizationID != nil {
		where = "organization_id = $1"
		args = append(args, *params.OrganizationID)
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM activity_log WHERE %s", where,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count activity entries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, organization_id, actor_id, action, entity_type,
		       entity_id, created_at
		FROM activity_log
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list activity entries: %w", err)
	}

	return entries, total, nil
}
