package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutboxKind names the dependent write an outbox entry replays.
type OutboxKind string

const (
	OutboxInventoryDecrement OutboxKind = "inventory_decrement"
	OutboxInventoryIncrement OutboxKind = "inventory_increment"
)

// OutboxStatus is the processing state of an outbox entry.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxDone       OutboxStatus = "done"
	OutboxFailed     OutboxStatus = "failed"
)

// OutboxEntry is a dependent write that failed once and awaits a retry.
type OutboxEntry struct {
	ID          uuid.UUID         `json:"id"`
	Kind        OutboxKind        `json:"kind"`
	LotID       uuid.UUID         `json:"lot_id"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Reference   MovementReference `json:"reference"`
	Status      OutboxStatus      `json:"status"`
	Attempts    int               `json:"attempts"`
	MaxAttempts int               `json:"max_attempts"`
	LastError   *string           `json:"last_error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ShouldRetry reports whether another attempt is allowed.
func (e *OutboxEntry) ShouldRetry() bool {
	return e.Status != OutboxDone && e.Attempts < e.MaxAttempts
}

// OutboxStats holds aggregate counts by status.
type OutboxStats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Done       int `json:"done"`
	Failed     int `json:"failed"`
}
