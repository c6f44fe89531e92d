package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationLevel is the severity of a user-facing message.
type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a user-facing message produced while serving a request.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
}

// SystemNotification is a persisted notification row targeted at roles.
type SystemNotification struct {
	ID          uuid.UUID      `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Severity    Severity       `json:"severity"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	TargetRoles []UserRole     `json:"target_roles"`
	CreatedAt   time.Time      `json:"created_at"`
}
