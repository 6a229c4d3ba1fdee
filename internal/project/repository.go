// AngelaMos | 2026
// repository.go

package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/opsboard/opsboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, project *Project) error
	SetStatus(ctx context.Context, id string, status Status) error
	List(ctx context.Context, params ListProjectsParams) ([]Project, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const projectColumns = `
	id, organization_id, name, description, status,
	created_by, archived_at, created_at, updated_at`

func (r *repository) Create(ctx context.Context, project *Project) error {
	query := `
		INSERT INTO projects (
			id, organization_id, name, description, status, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, project, query,
		project.ID,
		project.OrganizationID,
		project.Name,
		project.Description,
		project.Status,
		project.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Project, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM projects WHERE id = $1`, projectColumns,
	)

	var project Project
	err := r.db.GetContext(ctx, &project, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get project: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

func (r *repository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &project.UpdatedAt, query,
		project.ID,
		project.Name,
		project.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update project: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

// SetStatus flips the archive state; archived_at tracks the transition.
func (r *repository) SetStatus(
	ctx context.Context,
	id string,
	status Status,
) error {
	query := `
		UPDATE projects
		SET status = $2,
		    archived_at = CASE WHEN $2 = 'archived' THEN NOW() ELSE NULL END,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("set project status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set project status: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("set project status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListProjectsParams,
) ([]Project, int, error) {
	conditions := []string{"organization_id = $1"}
	args := []any{params.OrganizationID}

	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions,
			fmt.Sprintf("status = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT %s FROM projects
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		projectColumns, where, len(args)+1, len(args)+2)

	projects := []Project{}
	listArgs := append(args, params.PageSize, params.Offset())
	if err := r.db.SelectContext(ctx, &projects, query, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM projects WHERE %s`, where,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	return projects, total, nil
}
