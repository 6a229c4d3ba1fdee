// AngelaMos | 2026
// dto.go

package org

type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Slug string `json:"slug" validate:"omitempty,min=2,max=100"`
}

type UpdateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
