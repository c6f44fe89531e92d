package order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// GetOrder returns an order by id.
func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order.GetOrder: %w", err)
	}
	return o, nil
}

// GetInvoice returns the invoice billing an order.
func (s *Service) GetInvoice(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.orders.GetInvoiceByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order.GetInvoice: %w", err)
	}
	return inv, nil
}

// UpdateStatus moves an order along its lifecycle. The write only applies if
// the order still has the status it was read with.
func (s *Service) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*domain.Order, error) {
	if _, err := requireRole(ctx, domain.ElevatedRoles...); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order.UpdateStatus: %w", err)
	}

	if !current.Status.CanTransitionTo(in.Status) {
		return nil, &domain.TransitionError{
			Entity: "order",
			From:   current.Status.String(),
			To:     in.Status.String(),
		}
	}

	updated, err := s.orders.UpdateStatus(ctx, in.OrderID, current.Status, in.Status)
	if err != nil {
		return nil, fmt.Errorf("order.UpdateStatus: %w", err)
	}

	s.log.InfoContext(ctx, "order status changed",
		slog.String("order_id", in.OrderID.String()),
		slog.String("from", current.Status.String()),
		slog.String("to", in.Status.String()),
	)
	s.notify.Success(ctx, "Order updated",
		fmt.Sprintf("Order %s is now %s.", updated.OrderNumber, updated.Status))

	return updated, nil
}
