// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/opsboard/opsboard/internal/authz"
)

// User is the credential-store record. UsernameCanonical is the
// lower-cased form backed by a unique index, so username lookups are
// case-insensitive without scanning. Deactivation is the terminal state;
// users are never hard-deleted.
type User struct {
	ID                string     `db:"id"`
	Username          string     `db:"username"`
	UsernameCanonical string     `db:"username_canonical"`
	Email             string     `db:"email"`
	Name              string     `db:"name"`
	PasswordHash      string     `db:"password_hash"`
	Role              authz.Role `db:"role"`
	OrganizationID    *string    `db:"organization_id"`
	IsActive          bool       `db:"is_active"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == authz.RoleSuperAdmin
}
