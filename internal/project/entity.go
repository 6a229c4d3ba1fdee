// AngelaMos | 2026
// entity.go

// Package project manages organization-scoped projects and their
// archive lifecycle.
package project

import (
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

type Project struct {
	ID             string     `db:"id"              json:"id"`
	OrganizationID string     `db:"organization_id" json:"organization_id"`
	Name           string     `db:"name"            json:"name"`
	Description    string     `db:"description"     json:"description"`
	Status         Status     `db:"status"          json:"status"`
	CreatedBy      string     `db:"created_by"      json:"created_by"`
	ArchivedAt     *time.Time `db:"archived_at"     json:"archived_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"      json:"updated_at"`
}

func (p *Project) Archived() bool {
	return p.Status == StatusArchived
}
