package production

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// CreateProductionBatch checks every input against its stock lot and, when
// all are covered, writes the batch, its inputs and the stock decrements in
// one atomic call. Nothing is written when any input is short.
func (s *Service) CreateProductionBatch(ctx context.Context, in CreateBatchInput) (*domain.BatchWithInputs, error) {
	actor, err := requireRole(ctx, domain.WriterRoles...)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	date := in.ProductionDate
	if date.IsZero() {
		date = s.now()
	}
	date = date.UTC()

	b := domain.ProductionBatch{
		ID:             uuid.New(),
		BatchNumber:    in.BatchNumber,
		ProductionDate: date,
		Status:         domain.BatchStatusInProgress,
		OutputVolume:   in.OutputVolume,
		Notes:          in.Notes,
		CreatedBy:      &actor,
	}
	if b.BatchNumber == "" {
		b.BatchNumber = fmt.Sprintf("PB-%s-%s", date.Format("20060102"), strings.ToUpper(b.ID.String()[:8]))
	}

	inputs := make([]domain.BatchInput, len(in.Inputs))
	for i, line := range in.Inputs {
		inputs[i] = domain.BatchInput{
			ID:           uuid.New(),
			BatchID:      b.ID,
			LotID:        line.LotID,
			QuantityUsed: line.QuantityUsed,
		}
	}

	shortfalls, err := s.shortfalls(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("production.CreateProductionBatch: %w", err)
	}
	if len(shortfalls) > 0 {
		stockErr := &domain.InsufficientStockError{Shortfalls: shortfalls}
		s.notify.Error(ctx, "Insufficient stock", stockErr.Error())
		return nil, stockErr
	}

	created, err := s.batches.CreateAtomic(ctx, b, inputs)
	if err != nil {
		return nil, fmt.Errorf("production.CreateProductionBatch: %w", err)
	}

	s.log.InfoContext(ctx, "production batch created",
		slog.String("batch_id", created.Batch.ID.String()),
		slog.String("batch_number", created.Batch.BatchNumber),
		slog.Int("inputs", len(created.Inputs)),
	)
	s.notify.Success(ctx, "Production batch created",
		fmt.Sprintf("Batch %s was created and %d stock lot(s) were decremented.", created.Batch.BatchNumber, len(created.Inputs)))

	return created, nil
}

// shortfalls returns one entry per input its lot cannot cover. It asks the
// database first and falls back to per-lot checks when that call fails.
func (s *Service) shortfalls(ctx context.Context, inputs []domain.BatchInput) ([]domain.StockShortfall, error) {
	v, err := s.batches.ValidateInventory(ctx, inputs)
	if err == nil {
		if v.IsValid {
			return nil, nil
		}
		return v.Errors, nil
	}

	s.log.WarnContext(ctx, "inventory validation call failed, checking lots individually",
		slog.String("error", err.Error()),
	)

	var out []domain.StockShortfall
	for _, in := range inputs {
		check, err := s.ledger.CheckStock(ctx, in.LotID, in.QuantityUsed)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			check = domain.StockCheck{LotID: in.LotID, Requested: in.QuantityUsed}
		case err != nil:
			return nil, fmt.Errorf("check stock for lot %s: %w", in.LotID, err)
		}
		if !check.Sufficient() {
			out = append(out, domain.StockShortfall{
				LotID:     in.LotID,
				Requested: in.QuantityUsed,
				Available: check.Available,
			})
		}
	}
	return out, nil
}
