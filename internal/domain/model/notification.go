package model

import "time"

// Notification is the event enqueued on every successful job transition.
// Dispatch is at-least-once; duplicates are acceptable.
type Notification struct {
	JobID    string
	NewState JobState
	Actor    Actor
	QueuedAt time.Time
}

type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// NotificationLog records one dispatch attempt for audit and retry.
type NotificationLog struct {
	ID        string // UUID
	JobID     string
	State     JobState
	ActorID   string
	Recipient string
	Template  string
	Status    NotificationStatus
	Error     string
	CreatedAt time.Time
}
