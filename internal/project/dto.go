// AngelaMos | 2026
// dto.go

package project

type CreateProjectRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=2,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type ListProjectsParams struct {
	OrganizationID string
	Status         string
	Page           int
	PageSize       int
}

func (p *ListProjectsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 50
	}
}

func (p *ListProjectsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
