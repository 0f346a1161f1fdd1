package domain

import "time"

// AuditAction is the lifecycle transition an audit entry records.
type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
)

// AuditLog is an immutable record of one mutation attempt. The core only ever
// appends; entries are never updated or deleted.
type AuditLog struct {
	AuditID    string      `json:"auditID"` // Primary Key (UUID)
	UserID     *string     `json:"userID"`  // Nullable: system actions carry no user
	Action     AuditAction `json:"action"`
	EntityName string      `json:"entityName"`
	EntityID   string      `json:"entityID"`
	Details    string      `json:"details"` // Free text describing the mutation shape
	CreatedAt  time.Time   `json:"createdAt"`
}
