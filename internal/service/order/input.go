package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/pkg/validate"
)

// CreateOrderInput holds parameters for the order/invoice write.
type CreateOrderInput struct {
	CustomerID     uuid.UUID        `json:"customer_id"     validate:"required"`
	OrderDate      time.Time        `json:"order_date"`
	TotalAmount    decimal.Decimal  `json:"total_amount"    validate:"gte=0"`
	TaxAmount      decimal.Decimal  `json:"tax_amount"      validate:"gte=0"`
	DiscountAmount decimal.Decimal  `json:"discount_amount" validate:"gte=0"`
	NetAmount      decimal.Decimal  `json:"net_amount"`
	Notes          *string          `json:"notes"           validate:"omitempty,max=2000"`
	Items          []OrderItemInput `json:"items"           validate:"min=1,dive"`
}

// OrderItemInput is one requested order line.
type OrderItemInput struct {
	LotID     uuid.UUID       `json:"batch_id"   validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"   validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// Validate validates the create order input.
func (i CreateOrderInput) Validate() error {
	var errs []domain.FieldError

	if err := validate.Struct(i); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		errs = append(errs, verr.Errors...)
	}

	d := i.withDerivedAmounts()
	if d.TotalAmount.IsNegative() {
		errs = append(errs, domain.FieldError{
			Field:   "total_amount",
			Message: "derived from net_amount must not be negative",
		})
	} else if !d.NetAmount.Equal(domain.ExpectedNet(d.TotalAmount, d.TaxAmount, d.DiscountAmount)) {
		errs = append(errs, domain.FieldError{
			Field:   "net_amount",
			Message: "must equal total_amount + tax_amount - discount_amount",
		})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// withDerivedAmounts fills whichever of total_amount and net_amount the
// caller left at zero from the other, so a request may carry only the net.
func (i CreateOrderInput) withDerivedAmounts() CreateOrderInput {
	switch {
	case i.TotalAmount.IsZero() && !i.NetAmount.IsZero():
		i.TotalAmount = i.NetAmount.Sub(i.TaxAmount).Add(i.DiscountAmount)
	case i.NetAmount.IsZero() && !i.TotalAmount.IsZero():
		i.NetAmount = domain.ExpectedNet(i.TotalAmount, i.TaxAmount, i.DiscountAmount)
	}
	return i
}

// UpdateStatusInput holds parameters for an order status transition.
type UpdateStatusInput struct {
	OrderID uuid.UUID          `json:"order_id"`
	Status  domain.OrderStatus `json:"status"`
}

// Validate validates the update status input.
func (i UpdateStatusInput) Validate() error {
	var errs []domain.FieldError

	if i.OrderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "order_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
