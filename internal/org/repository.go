// AngelaMos | 2026
// repository.go

package org

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/opsboard/opsboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, organization *Organization) error
	GetByID(ctx context.Context, id string) (*Organization, error)
	Update(ctx context.Context, organization *Organization) error
	List(ctx context.Context, page, pageSize int) ([]Organization, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const orgColumns = `id, name, slug, created_at, updated_at`

func (r *repository) Create(
	ctx context.Context,
	organization *Organization,
) error {
	query := `
		INSERT INTO organizations (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, organization, query,
		organization.ID,
		organization.Name,
		organization.Slug,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create organization: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create organization: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Organization, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM organizations WHERE id = $1`, orgColumns,
	)

	var organization Organization
	err := r.db.GetContext(ctx, &organization, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get organization: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}

	return &organization, nil
}

func (r *repository) Update(
	ctx context.Context,
	organization *Organization,
) error {
	query := `
		UPDATE organizations
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &organization.UpdatedAt, query,
		organization.ID,
		organization.Name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update organization: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	page, pageSize int,
) ([]Organization, int, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM organizations
		ORDER BY name
		LIMIT $1 OFFSET $2`, orgColumns)

	organizations := []Organization{}
	offset := (page - 1) * pageSize
	err := r.db.SelectContext(ctx, &organizations, query, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list organizations: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM organizations`)
	if err != nil {
		return nil, 0, fmt.Errorf("count organizations: %w", err)
	}

	return organizations, total, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
