package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Severity ranks an integrity finding.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) String() string { return string(s) }

func (s Severity) IsValid() bool { return s.rank() > 0 }

func (s Severity) rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

// Max returns the more severe of s and other.
func (s Severity) Max(other Severity) Severity {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// IssueType tags the consistency rule a finding violates.
type IssueType string

const (
	IssueOrphanedOrder             IssueType = "orphaned_order"
	IssueOrphanedInvoice           IssueType = "orphaned_invoice"
	IssueOrphanedProductionBatch   IssueType = "orphaned_production_batch"
	IssueNegativeInventory         IssueType = "negative_inventory"
	IssueInventoryDiscrepancy      IssueType = "inventory_discrepancy"
	IssueCriticallyLowStock        IssueType = "critically_low_stock"
	IssueOrphanedLedgerEntry       IssueType = "orphaned_ledger_entry"
	IssueInvoiceWithoutLedgerEntry IssueType = "invoice_without_ledger_entry"
)

func (t IssueType) String() string { return string(t) }

func (t IssueType) IsValid() bool {
	switch t {
	case IssueOrphanedOrder, IssueOrphanedInvoice, IssueOrphanedProductionBatch, IssueNegativeInventory,
		IssueInventoryDiscrepancy, IssueCriticallyLowStock, IssueOrphanedLedgerEntry, IssueInvoiceWithoutLedgerEntry:
		return true
	}
	return false
}

// Severity returns the fixed severity assigned to findings of this type.
func (t IssueType) Severity() Severity {
	switch t {
	case IssueOrphanedInvoice, IssueNegativeInventory:
		return SeverityCritical
	case IssueOrphanedOrder, IssueOrphanedLedgerEntry:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// Finding is a detected violation before it is persisted as an issue.
type Finding struct {
	Type        IssueType
	Description string
	EntityType  string
	EntityID    uuid.UUID
}

// DataIntegrityIssue is a persisted finding. Only resolution fields ever change.
type DataIntegrityIssue struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	RunID       uuid.UUID  `json:"run_id" db:"run_id"`
	IssueType   IssueType  `json:"issue_type" db:"issue_type"`
	Description string     `json:"description" db:"description"`
	Severity    Severity   `json:"severity" db:"severity"`
	EntityType  string     `json:"entity_type" db:"entity_type"`
	EntityID    uuid.UUID  `json:"entity_id" db:"entity_id"`
	DetectedAt  time.Time  `json:"detected_at" db:"detected_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
	ResolvedBy  *uuid.UUID `json:"resolved_by,omitempty" db:"resolved_by"`
	Resolution  *string    `json:"resolution,omitempty" db:"resolution"`
}

// IsResolved reports whether the issue has been marked resolved.
func (i *DataIntegrityIssue) IsResolved() bool {
	return i.ResolvedAt != nil
}

// AlertChannel is a delivery route for integrity alerts.
type AlertChannel string

const (
	AlertChannelInApp  AlertChannel = "in_app"
	AlertChannelSystem AlertChannel = "system"
	AlertChannelEmail  AlertChannel = "email"
)

// AlertConfig controls when findings of one type raise an alert.
type AlertConfig struct {
	IssueType IssueType      `json:"issue_type"`
	Enabled   bool           `json:"enabled"`
	Threshold int            `json:"threshold"`
	Channels  []AlertChannel `json:"channels"`
}

// Triggered reports whether count findings reach the configured threshold.
func (c AlertConfig) Triggered(count int) bool {
	return c.Enabled && count > 0 && count >= c.Threshold
}

// DataIntegrityAlert is raised when same-type findings cross a threshold.
type DataIntegrityAlert struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	IssueType      IssueType  `json:"issue_type" db:"issue_type"`
	Severity       Severity   `json:"severity" db:"severity"`
	Message        string     `json:"message" db:"message"`
	IssueCount     int        `json:"issue_count" db:"issue_count"`
	Fingerprint    string     `json:"fingerprint" db:"fingerprint"`
	Occurrences    int        `json:"occurrences" db:"occurrences"`
	FirstSeenAt    time.Time  `json:"first_seen_at" db:"first_seen_at"`
	LastSeenAt     time.Time  `json:"last_seen_at" db:"last_seen_at"`
	Acknowledged   bool       `json:"acknowledged" db:"acknowledged"`
	AcknowledgedBy *uuid.UUID `json:"acknowledged_by,omitempty" db:"acknowledged_by"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty" db:"acknowledged_at"`
}

// AlertFingerprint returns a stable hash of the offending entity set so the
// same persisting problem maps to the same alert across audit runs.
func AlertFingerprint(issueType IssueType, entityIDs []uuid.UUID) string {
	ids := make([]string, len(entityIDs))
	for i, id := range entityIDs {
		ids[i] = id.String()
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	h := sha256.New()
	h.Write([]byte(issueType))
	for _, id := range ids {
		h.Write([]byte{0})
		h.Write([]byte(id))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// IssueFilter narrows issue listings.
type IssueFilter struct {
	IssueType  *IssueType
	Severity   *Severity
	Unresolved bool
	Limit      int
	Offset     int
}
