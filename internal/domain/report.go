package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchYield is one production batch with its input totals.
type BatchYield struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	BatchNumber        string          `json:"batch_number" db:"batch_number"`
	ProductionDate     time.Time       `json:"production_date" db:"production_date"`
	Status             BatchStatus     `json:"status" db:"status"`
	TotalInputCost     decimal.Decimal `json:"total_input_cost" db:"total_input_cost"`
	OutputVolume       decimal.Decimal `json:"output_volume" db:"output_volume"`
	CostPerUnit        decimal.Decimal `json:"cost_per_unit" db:"cost_per_unit"`
	YieldPercentage    decimal.Decimal `json:"yield_percentage" db:"yield_percentage"`
	InputCount         int             `json:"input_count" db:"input_count"`
	TotalInputQuantity decimal.Decimal `json:"total_input_quantity" db:"total_input_quantity"`
	// MetricsConsistent is false when the stored cost per unit or yield
	// differs from the value recomputed from the inputs.
	MetricsConsistent bool `json:"metrics_consistent" db:"-"`
}

// Aging buckets of vw_invoice_aging.
const (
	AgingSettled = "settled"
	AgingCurrent = "current"
)

// AgingBuckets lists every bucket in display order.
var AgingBuckets = []string{AgingSettled, AgingCurrent, "1-30", "31-60", "61-90", "90+"}

// InvoiceAging is one non-cancelled invoice with its outstanding balance.
type InvoiceAging struct {
	ID                uuid.UUID       `json:"id" db:"id"`
	InvoiceNumber     string          `json:"invoice_number" db:"invoice_number"`
	OrderID           uuid.UUID       `json:"order_id" db:"order_id"`
	IssueDate         time.Time       `json:"issue_date" db:"issue_date"`
	DueDate           time.Time       `json:"due_date" db:"due_date"`
	TotalAmount       decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount" db:"outstanding_amount"`
	DaysOverdue       int             `json:"days_overdue" db:"days_overdue"`
	AgingBucket       string          `json:"aging_bucket" db:"aging_bucket"`
}

// InvoiceAgingReport groups invoice balances by aging bucket.
type InvoiceAgingReport struct {
	Invoices         []InvoiceAging             `json:"invoices"`
	OutstandingTotal decimal.Decimal            `json:"outstanding_total"`
	ByBucket         map[string]decimal.Decimal `json:"by_bucket"`
}

// CustomerMetrics summarises a customer's orders.
type CustomerMetrics struct {
	CustomerID     uuid.UUID       `json:"customer_id" db:"customer_id"`
	OrderCount     int             `json:"order_count" db:"order_count"`
	CancelledCount int             `json:"cancelled_count" db:"cancelled_count"`
	LifetimeValue  decimal.Decimal `json:"lifetime_value" db:"lifetime_value"`
	FirstOrderDate time.Time       `json:"first_order_date" db:"first_order_date"`
	LastOrderDate  time.Time       `json:"last_order_date" db:"last_order_date"`
}

// LotDetail is a stock lot with its movement history.
type LotDetail struct {
	Lot          MaterialIntakeRecord `json:"lot"`
	BelowMinimum bool                 `json:"below_minimum"`
	Movements    []InventoryMovement  `json:"movements"`
}
