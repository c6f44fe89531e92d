package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry is an immutable before/after snapshot of a privileged mutation.
type AuditLogEntry struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	Action      AuditAction    `json:"action" db:"action"`
	OldValues   map[string]any `json:"old_values" db:"old_values"`
	NewValues   map[string]any `json:"new_values" db:"new_values"`
	PerformedBy uuid.UUID      `json:"performed_by" db:"performed_by"`
	Metadata    map[string]any `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// AuditLogFilter narrows audit-trail retrieval. Page is 1-based.
type AuditLogFilter struct {
	UserID      *uuid.UUID
	Action      *AuditAction
	PerformedBy *uuid.UUID
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// AuditLogPage is one page of audit entries.
type AuditLogPage struct {
	Entries    []AuditLogEntry `json:"entries"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// TotalPages returns ceil(total/pageSize), or 0 when pageSize is not positive.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// RoleChange is one requested change in a bulk role update.
type RoleChange struct {
	UserID  uuid.UUID `json:"user_id"`
	NewRole UserRole  `json:"new_role"`
}

// RoleChangeOutcome reports what happened to one RoleChange.
type RoleChangeOutcome struct {
	UserID  uuid.UUID `json:"user_id"`
	NewRole UserRole  `json:"new_role"`
	Applied bool      `json:"applied"`
	Error   string    `json:"error,omitempty"`
}
