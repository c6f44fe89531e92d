package production

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
	"github.com/heartmarshall/bizops-backend/pkg/validate"
)

// CreateBatchInput holds parameters for the production batch write.
type CreateBatchInput struct {
	BatchNumber    string           `json:"batch_number"    validate:"max=64"`
	ProductionDate time.Time        `json:"production_date"`
	OutputVolume   decimal.Decimal  `json:"output_volume"   validate:"gte=0"`
	Notes          *string          `json:"notes"           validate:"omitempty,max=2000"`
	Inputs         []BatchInputLine `json:"inputs"          validate:"min=1,dive"`
}

// BatchInputLine is one requested material consumption.
type BatchInputLine struct {
	LotID        uuid.UUID       `json:"material_intake_id" validate:"required"`
	QuantityUsed decimal.Decimal `json:"quantity_used"      validate:"gt=0"`
}

// Validate validates the create batch input. Each stock lot may appear once.
func (i CreateBatchInput) Validate() error {
	var errs []domain.FieldError

	if err := validate.Struct(i); err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		errs = append(errs, verr.Errors...)
	}

	seen := make(map[uuid.UUID]struct{}, len(i.Inputs))
	for idx, in := range i.Inputs {
		if in.LotID == uuid.Nil {
			continue
		}
		if _, dup := seen[in.LotID]; dup {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("inputs[%d].material_intake_id", idx),
				Message: "duplicate stock lot",
			})
		}
		seen[in.LotID] = struct{}{}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RollbackInput holds parameters for restoring a batch's consumed stock.
// When Inputs is empty the batch's recorded inputs are used.
type RollbackInput struct {
	BatchID uuid.UUID           `json:"batch_id"`
	Inputs  []domain.BatchInput `json:"inputs"`
	Reason  string              `json:"reason"`
}

// Validate validates the rollback input.
func (i RollbackInput) Validate() error {
	var errs []domain.FieldError

	if i.BatchID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "batch_id", Message: "required"})
	}
	if i.Reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	} else if len(i.Reason) > 500 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long"})
	}
	for idx, in := range i.Inputs {
		if !in.QuantityUsed.IsPositive() {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("inputs[%d].quantity_used", idx),
				Message: "must be greater than 0",
			})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// TransitionInput holds parameters for a batch status change.
type TransitionInput struct {
	BatchID uuid.UUID          `json:"batch_id"`
	Status  domain.BatchStatus `json:"status"`
}

// Validate validates the transition input.
func (i TransitionInput) Validate() error {
	var errs []domain.FieldError

	if i.BatchID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "batch_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
