// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/opsboard/opsboard/internal/authz"
)

type CreateUserRequest struct {
	Username       string  `json:"username"        validate:"required,min=3,max=100"`
	Email          string  `json:"email"           validate:"required,email,max=255"`
	Name           string  `json:"name"            validate:"omitempty,max=100"`
	Role           string  `json:"role"            validate:"required,oneof=super_admin admin project_manager write_access read_access"`
	OrganizationID *string `json:"organization_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"  validate:"omitempty,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin project_manager write_access read_access"`
}

type UserResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Role           authz.Role `json:"role"`
	OrganizationID *string    `json:"organization_id"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CreatedUserResponse carries the generated one-time password. It is
// returned exactly once and never persisted or logged.
type CreatedUserResponse struct {
	UserResponse
	InitialPassword string `json:"initial_password"`
}

type ListUsersParams struct {
	Page            int
	PageSize        int
	Search          string
	Role            string
	OrganizationID  *string
	IncludeInactive bool
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
