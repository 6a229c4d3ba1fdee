// AngelaMos | 2026
// entity.go

// Package ticket manages work items inside a project. Every ticket
// carries its organization id so access checks never need a join.
package ticket

import (
	"time"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type Ticket struct {
	ID             string    `db:"id"              json:"id"`
	ProjectID      string    `db:"project_id"      json:"project_id"`
	OrganizationID string    `db:"organization_id" json:"organization_id"`
	Title          string    `db:"title"           json:"title"`
	Description    string    `db:"description"     json:"description"`
	Status         Status    `db:"status"          json:"status"`
	Priority       Priority  `db:"priority"        json:"priority"`
	AssigneeID     *string   `db:"assignee_id"     json:"assignee_id"`
	CreatedBy      string    `db:"created_by"      json:"created_by"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}
