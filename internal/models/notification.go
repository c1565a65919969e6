package models

import (
	"encoding/json"
	"time"
)

type NotificationSeverity string

const (
	NotificationSeverityInfo    NotificationSeverity = "info"
	NotificationSeverityWarning NotificationSeverity = "warning"
)

type NotificationEvent string

const (
	NotificationEventInvitationAccepted NotificationEvent = "invitation_accepted"
	NotificationEventInvitationDeclined NotificationEvent = "invitation_declined"
)

type Notification struct {
	ID        string               `json:"id" db:"id"`
	UserID    string               `json:"user_id" db:"user_id"`
	EventType NotificationEvent    `json:"event_type" db:"event_type"`
	Severity  NotificationSeverity `json:"severity" db:"severity"`
	Title     string               `json:"title" db:"title"`
	Message   string               `json:"message" db:"message"`
	Metadata  json.RawMessage      `json:"metadata,omitempty" db:"metadata"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
	ReadAt    *time.Time           `json:"read_at,omitempty" db:"read_at"`
}
