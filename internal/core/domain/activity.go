package domain

import "time"

// Activity actions recorded in the audit trail.
const (
	ActivityAssigned      = "assigned"
	ActivityStatusChanged = "status_changed"
	ActivityUpdated       = "updated"
	ActivityDeleted       = "deleted"
)

// Activity is an audit record of an admin mutation on a project. Records are
// written asynchronously and best-effort; they are not part of any request's
// success criteria.
type Activity struct {
	ProjectID string
	ActorID   string
	Action    string
	Detail    string
	Timestamp time.Time
}
