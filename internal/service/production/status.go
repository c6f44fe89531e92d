package production

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// TransitionStatus moves a batch along its state machine.
func (s *Service) TransitionStatus(ctx context.Context, in TransitionInput) (*domain.ProductionBatch, error) {
	if _, err := requireRole(ctx, domain.ElevatedRoles...); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.batches.GetByID(ctx, in.BatchID)
	if err != nil {
		return nil, fmt.Errorf("production.TransitionStatus: %w", err)
	}

	if !current.Status.CanTransitionTo(in.Status) {
		return nil, &domain.TransitionError{
			Entity: "production batch",
			From:   current.Status.String(),
			To:     in.Status.String(),
		}
	}

	updated, err := s.batches.UpdateStatus(ctx, in.BatchID, current.Status, in.Status)
	if err != nil {
		return nil, fmt.Errorf("production.TransitionStatus: %w", err)
	}

	s.log.InfoContext(ctx, "production batch status changed",
		slog.String("batch_id", in.BatchID.String()),
		slog.String("from", current.Status.String()),
		slog.String("to", in.Status.String()),
	)
	s.notify.Success(ctx, "Production batch updated",
		fmt.Sprintf("Batch %s is now %s.", updated.BatchNumber, updated.Status))

	return updated, nil
}
