package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialIntakeRecord is a stock lot: one intake of material with its own
// remaining quantity. RemainingQuantity must never drop below zero.
type MaterialIntakeRecord struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	SupplierID        *uuid.UUID      `json:"supplier_id,omitempty" db:"supplier_id"`
	MaterialName      string          `json:"material_name" db:"material_name"`
	OriginalQuantity  decimal.Decimal `json:"original_quantity" db:"original_quantity"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit" db:"cost_per_unit"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity" db:"remaining_quantity"`
	MinimumStockLevel decimal.Decimal `json:"minimum_stock_level" db:"minimum_stock_level"`
	IntakeDate        time.Time       `json:"intake_date" db:"intake_date"`
}

// MovementDirection tells whether a movement removed or returned stock.
type MovementDirection string

const (
	MovementDecrement MovementDirection = "decrement"
	MovementIncrement MovementDirection = "increment"
)

// ReferenceType names the kind of transaction a stock movement is attributed to.
type ReferenceType string

const (
	ReferenceOrder           ReferenceType = "order"
	ReferenceProductionBatch ReferenceType = "production_batch"
	ReferenceRollback        ReferenceType = "rollback"
	ReferenceAdjustment      ReferenceType = "adjustment"
)

// MovementReference attributes a stock change to the transaction that caused it.
type MovementReference struct {
	Type ReferenceType `json:"reference_type"`
	ID   uuid.UUID     `json:"reference_id"`
	Note string        `json:"note"`
}

// InventoryMovement is one entry of a stock lot's change history.
type InventoryMovement struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	LotID         uuid.UUID         `json:"lot_id" db:"lot_id"`
	Direction     MovementDirection `json:"direction" db:"direction"`
	Quantity      decimal.Decimal   `json:"quantity" db:"quantity"`
	ReferenceType ReferenceType     `json:"reference_type" db:"reference_type"`
	ReferenceID   uuid.UUID         `json:"reference_id" db:"reference_id"`
	Note          string            `json:"note" db:"note"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
}

// StockCheck is the result of comparing a requested quantity with a lot.
type StockCheck struct {
	LotID     uuid.UUID
	Requested decimal.Decimal
	Available decimal.Decimal
}

// Sufficient reports whether the lot can cover the request.
func (c StockCheck) Sufficient() bool {
	return c.Available.GreaterThanOrEqual(c.Requested)
}
