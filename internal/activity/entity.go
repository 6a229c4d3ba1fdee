// AngelaMos | 2026
// entity.go

// Package activity is the append-only audit trail. Entries are recorded
// best-effort: a failed write never fails the operation that caused it.
package activity

import (
	"time"
)

type Entry struct {
	ID             string    `db:"id"              json:"id"`
	OrganizationID *string   `db:"organization_id" json:"organization_id"`
	ActorID        string    `db:"actor_id"        json:"actor_id"`
	Action         string    `db:"action"          json:"action"`
	EntityType     string    `db:"entity_type"     json:"entity_type"`
	EntityID       *string   `db:"entity_id"       json:"entity_id,omitempty"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
}

const (
	ActionUserLogin       = "user.login"
	ActionUserCreated     = "user.created"
	ActionUserRoleChanged = "user.role_changed"
	ActionUserDeactivated = "user.deactivated"
	ActionUserReactivated = "user.reactivated"

	ActionProjectCreated    = "project.created"
	ActionProjectUpdated    = "project.updated"
	ActionProjectArchived   = "project.archived"
	ActionProjectUnarchived = "project.unarchived"

	ActionTicketCreated = "ticket.created"
	ActionTicketUpdated = "ticket.updated"
	ActionTicketDeleted = "ticket.deleted"
)

const (
	EntityUser    = "user"
	EntityProject = "project"
	EntityTicket  = "ticket"
)
