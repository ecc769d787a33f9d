package model

import "time"

// AuditLog is one append-only record of who did what to which object.
type AuditLog struct {
	ID         string // UUID
	ActorID    string
	Action     string
	ObjectType string
	ObjectID   string
	CreatedAt  time.Time
}

func NewAuditLog(id, actorID, action, objectType, objectID string) *AuditLog {
	return &AuditLog{
		ID:         id,
		ActorID:    actorID,
		Action:     action,
		ObjectType: objectType,
		ObjectID:   objectID,
		CreatedAt:  time.Now(),
	}
}
