// AngelaMos | 2026
// repository.go

package ticket

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/opsboard/opsboard/internal/core"
)

type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListTicketsParams) ([]Ticket, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const ticketColumns = `
	id, project_id, organization_id, title, description, status,
	priority, assignee_id, created_by, created_at, updated_at`

func (r *repository) Create(ctx context.Context, ticket *Ticket) error {
	query := `
		INSERT INTO tickets (
			id, project_id, organization_id, title, description,
			status, priority, assignee_id, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, ticket, query,
		ticket.ID,
		ticket.ProjectID,
		ticket.OrganizationID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.AssigneeID,
		ticket.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Ticket, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tickets WHERE id = $1`, ticketColumns,
	)

	var ticket Ticket
	err := r.db.GetContext(ctx, &ticket, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get ticket: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}

	return &ticket, nil
}

func (r *repository) Update(ctx context.Context, ticket *Ticket) error {
	query := `
		UPDATE tickets
		SET title = $2, description = $3, status = $4,
		    priority = $5, assignee_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &ticket.UpdatedAt, query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.Status,
		ticket.Priority,
		ticket.AssigneeID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update ticket: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx, `DELETE FROM tickets WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete ticket: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListTicketsParams,
) ([]Ticket, int, error) {
	conditions := []string{"project_id = $1"}
	args := []any{params.ProjectID}

	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions,
			fmt.Sprintf("status = $%d", len(args)))
	}
	if params.Priority != "" {
		args = append(args, params.Priority)
		conditions = append(conditions,
			fmt.Sprintf("priority = $%d", len(args)))
	}
	if params.AssigneeID != "" {
		args = append(args, params.AssigneeID)
		conditions = append(conditions,
			fmt.Sprintf("assignee_id = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT %s FROM tickets
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		ticketColumns, where, len(args)+1, len(args)+2)

	tickets := []Ticket{}
	listArgs := append(args, params.PageSize, params.Offset())
	if err := r.db.SelectContext(ctx, &tickets, query, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM tickets WHERE %s`, where,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	return tickets, total, nil
}
