// AngelaMos | 2026
// entity.go

// Package org manages organizations, the tenancy boundary every
// non-super-admin user and resource belongs to.
package org

import (
	"time"
)

type Organization struct {
	ID        string    `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Slug      string    `db:"slug"       json:"slug"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
