package production

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// RollbackFailure is one stock restoration that did not apply.
type RollbackFailure struct {
	LotID    uuid.UUID       `json:"material_intake_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Error    string          `json:"error"`
}

// RollbackResult reports which lots were restored and which were not.
type RollbackResult struct {
	BatchID  uuid.UUID         `json:"batch_id"`
	Restored []uuid.UUID       `json:"restored"`
	Failed   []RollbackFailure `json:"failed"`
}

// RollbackProductionBatch returns each input's quantity to its stock lot.
// Every input is attempted; failures are queued for retry. The batch and
// its input rows are left as they are. A batch is rolled back at most once:
// later calls fail with domain.ErrConflict.
func (s *Service) RollbackProductionBatch(ctx context.Context, in RollbackInput) (*RollbackResult, error) {
	actor, err := requireRole(ctx, domain.ElevatedRoles...)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	done, err := s.batches.RolledBack(ctx, in.BatchID)
	if err != nil {
		return nil, fmt.Errorf("production.RollbackProductionBatch: %w", err)
	}
	if done {
		return nil, fmt.Errorf("batch %s was already rolled back: %w", in.BatchID, domain.ErrConflict)
	}

	inputs := in.Inputs
	if len(inputs) == 0 {
		recorded, err := s.batches.Inputs(ctx, in.BatchID)
		if err != nil {
			return nil, fmt.Errorf("production.RollbackProductionBatch: load inputs: %w", err)
		}
		inputs = recorded
	}
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("inputs", "batch has no inputs to restore")
	}

	ref := domain.MovementReference{Type: domain.ReferenceRollback, ID: in.BatchID, Note: in.Reason}
	result := &RollbackResult{BatchID: in.BatchID, Restored: []uuid.UUID{}, Failed: []RollbackFailure{}}

	for _, input := range inputs {
		err := s.ledger.Increment(ctx, input.LotID, input.QuantityUsed, ref)
		if err == nil {
			result.Restored = append(result.Restored, input.LotID)
			continue
		}

		result.Failed = append(result.Failed, RollbackFailure{
			LotID:    input.LotID,
			Quantity: input.QuantityUsed,
			Error:    err.Error(),
		})
		s.metrics.RecordDependentWriteFailure("batch_rollback")
		s.log.WarnContext(ctx, "stock restoration failed",
			slog.String("batch_id", in.BatchID.String()),
			slog.String("lot_id", input.LotID.String()),
			slog.String("quantity", input.QuantityUsed.String()),
			slog.String("error", err.Error()),
		)
		s.enqueue(ctx, input, ref, err)
	}

	s.log.InfoContext(ctx, "production batch rolled back",
		slog.String("batch_id", in.BatchID.String()),
		slog.String("reason", in.Reason),
		slog.String("actor_id", actor.String()),
		slog.Int("restored", len(result.Restored)),
		slog.Int("failed", len(result.Failed)),
	)

	msg := fmt.Sprintf("Batch %s was rolled back: %s.", in.BatchID, in.Reason)
	if n := len(result.Failed); n > 0 {
		msg += fmt.Sprintf(" %d of %d stock restoration(s) failed and were queued for retry.", n, len(inputs))
	}
	s.notify.Warning(ctx, "Production batch rolled back", msg)

	return result, nil
}

func (s *Service) enqueue(ctx context.Context, input domain.BatchInput, ref domain.MovementReference, cause error) {
	reason := cause.Error()
	entry := domain.OutboxEntry{
		ID:          uuid.New(),
		Kind:        domain.OutboxInventoryIncrement,
		LotID:       input.LotID,
		Quantity:    input.QuantityUsed,
		Reference:   ref,
		Status:      domain.OutboxPending,
		MaxAttempts: s.outboxMaxAttempts,
		LastError:   &reason,
	}
	if err := s.outbox.Enqueue(ctx, entry); err != nil {
		s.log.ErrorContext(ctx, "enqueue dependent write",
			slog.String("lot_id", input.LotID.String()),
			slog.String("reference_id", ref.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
