package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a customer order. Orders are never deleted; cancellation is a status.
type Order struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	OrderNumber    string          `json:"order_number" db:"order_number"`
	CustomerID     uuid.UUID       `json:"customer_id" db:"customer_id"`
	OrderDate      time.Time       `json:"order_date" db:"order_date"`
	Status         OrderStatus     `json:"status" db:"status"`
	PaymentStatus  PaymentStatus   `json:"payment_status" db:"payment_status"`
	TotalAmount    decimal.Decimal `json:"total_amount" db:"total_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount" db:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount" db:"discount_amount"`
	NetAmount      decimal.Decimal `json:"net_amount" db:"net_amount"`
	Notes          *string         `json:"notes,omitempty" db:"notes"`
	CreatedBy      *uuid.UUID      `json:"created_by,omitempty" db:"created_by"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// ExpectedNet returns total + tax − discount.
func ExpectedNet(total, tax, discount decimal.Decimal) decimal.Decimal {
	return total.Add(tax).Sub(discount)
}

// OrderItem is one line of an order. It draws its quantity from a stock lot.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   uuid.UUID       `json:"order_id" db:"order_id"`
	LotID     uuid.UUID       `json:"batch_id" db:"lot_id"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total" db:"line_total"`
}

// Invoice bills exactly one order.
type Invoice struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	InvoiceNumber string          `json:"invoice_number" db:"invoice_number"`
	OrderID       uuid.UUID       `json:"order_id" db:"order_id"`
	IssueDate     time.Time       `json:"issue_date" db:"issue_date"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
	TotalAmount   decimal.Decimal `json:"total_amount" db:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	Status        InvoiceStatus   `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// OrderWithInvoice is the result of the compound order/invoice write.
type OrderWithInvoice struct {
	Order   Order       `json:"order"`
	Invoice Invoice     `json:"invoice"`
	Items   []OrderItem `json:"items"`
}
