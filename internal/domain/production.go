package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionBatch converts stock-lot inputs into an output volume.
type ProductionBatch struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	BatchNumber     string          `json:"batch_number" db:"batch_number"`
	ProductionDate  time.Time       `json:"production_date" db:"production_date"`
	Status          BatchStatus     `json:"status" db:"status"`
	TotalInputCost  decimal.Decimal `json:"total_input_cost" db:"total_input_cost"`
	OutputVolume    decimal.Decimal `json:"output_volume" db:"output_volume"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit" db:"cost_per_unit"`
	YieldPercentage decimal.Decimal `json:"yield_percentage" db:"yield_percentage"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	CreatedBy       *uuid.UUID      `json:"created_by,omitempty" db:"created_by"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// BatchInput records the quantity of one stock lot consumed by a batch.
type BatchInput struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	BatchID        uuid.UUID       `json:"batch_id" db:"batch_id"`
	LotID          uuid.UUID       `json:"material_intake_id" db:"material_intake_id"`
	QuantityUsed   decimal.Decimal `json:"quantity_used" db:"quantity_used"`
	CostAttributed decimal.Decimal `json:"cost_attributed" db:"cost_attributed"`
}

// BatchWithInputs is the result of the compound batch write.
type BatchWithInputs struct {
	Batch  ProductionBatch `json:"batch"`
	Inputs []BatchInput    `json:"inputs"`
}

// BatchMetrics returns cost per output unit and yield percentage for a batch.
// Both are zero when the denominator is zero.
func BatchMetrics(totalInputCost, outputVolume, totalInputQty decimal.Decimal) (costPerUnit, yieldPct decimal.Decimal) {
	if outputVolume.IsPositive() {
		costPerUnit = totalInputCost.DivRound(outputVolume, 4)
	}
	if totalInputQty.IsPositive() {
		yieldPct = outputVolume.Div(totalInputQty).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return costPerUnit, yieldPct
}

// InventoryValidation is the outcome of checking batch inputs against stock.
type InventoryValidation struct {
	IsValid bool             `json:"is_valid"`
	Errors  []StockShortfall `json:"errors"`
}
