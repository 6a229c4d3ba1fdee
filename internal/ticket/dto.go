// AngelaMos | 2026
// dto.go

package ticket

type CreateTicketRequest struct {
	Title       string  `json:"title"       validate:"required,min=2,max=300"`
	Description string  `json:"description" validate:"omitempty,max=5000"`
	Priority    string  `json:"priority"    validate:"omitempty,oneof=low medium high critical"`
	AssigneeID  *string `json:"assignee_id" validate:"omitempty,uuid"`
}

type UpdateTicketRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,min=2,max=300"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,oneof=open in_progress resolved closed"`
	Priority    *string `json:"priority,omitempty"    validate:"omitempty,oneof=low medium high critical"`
	AssigneeID  *string `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
}

type ListTicketsParams struct {
	ProjectID  string
	Status     string
	Priority   string
	AssigneeID string
	Page       int
	PageSize   int
}

func (p *ListTicketsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 50
	}
}

func (p *ListTicketsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
