// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/opsboard/opsboard/internal/authz"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

type LoginResponse struct {
	AccessToken    string     `json:"access_token"`
	TokenType      string     `json:"token_type"`
	ExpiresIn      int        `json:"expires_in"`
	UserID         string     `json:"user_id"`
	OrganizationID *string    `json:"organization_id"`
	Role           authz.Role `json:"role"`
}

type MeResponse struct {
	UserID         string     `json:"user_id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	OrganizationID *string    `json:"organization_id"`
	Role           authz.Role `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}
