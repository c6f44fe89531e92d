package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// CreateOrderResult is the created order and invoice plus the lots whose
// stock decrement did not apply and was queued for retry.
type CreateOrderResult struct {
	domain.OrderWithInvoice
	FailedLots []uuid.UUID `json:"failed_lots,omitempty"`
}

// CreateOrder writes the order, its items and its invoice atomically, then
// decrements stock for every item. Decrement failures do not fail the call:
// they are reported in one warning and queued in the outbox.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	actor, err := requireRole(ctx, domain.WriterRoles...)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.withDerivedAmounts()

	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = s.now()
	}
	orderDate = orderDate.UTC()

	count, err := s.orders.CountInYear(ctx, orderDate.Year())
	if err != nil {
		return nil, fmt.Errorf("order.CreateOrder: count orders: %w", err)
	}
	seq := count + 1

	o := domain.Order{
		ID:             uuid.New(),
		OrderNumber:    fmt.Sprintf("ORD-%d-%04d", orderDate.Year(), seq),
		CustomerID:     in.CustomerID,
		OrderDate:      orderDate,
		Status:         domain.OrderStatusDraft,
		PaymentStatus:  domain.PaymentStatusPending,
		TotalAmount:    in.TotalAmount,
		TaxAmount:      in.TaxAmount,
		DiscountAmount: in.DiscountAmount,
		NetAmount:      in.NetAmount,
		Notes:          in.Notes,
		CreatedBy:      &actor,
	}

	items := make([]domain.OrderItem, len(in.Items))
	for i, it := range in.Items {
		items[i] = domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			LotID:     it.LotID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.Quantity.Mul(it.UnitPrice).Round(2),
		}
	}

	inv := domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: fmt.Sprintf("INV-%d-%04d", orderDate.Year(), seq),
		OrderID:       o.ID,
		IssueDate:     orderDate,
		DueDate:       orderDate.AddDate(0, 0, s.cfg.InvoiceDueDays),
		TotalAmount:   o.NetAmount,
		Status:        domain.InvoiceStatusIssued,
	}

	created, err := s.orders.CreateWithInvoice(ctx, o, items, inv)
	if err != nil {
		return nil, fmt.Errorf("order.CreateOrder: %w", err)
	}

	s.log.InfoContext(ctx, "order created",
		slog.String("order_id", created.Order.ID.String()),
		slog.String("order_number", created.Order.OrderNumber),
		slog.String("invoice_id", created.Invoice.ID.String()),
	)

	ref := domain.MovementReference{
		Type: domain.ReferenceOrder,
		ID:   created.Order.ID,
		Note: "Order " + created.Order.OrderNumber,
	}
	failed := s.decrementAll(ctx, items, ref)

	s.notify.Success(ctx, "Order created",
		fmt.Sprintf("Order %s and invoice %s were created.", created.Order.OrderNumber, created.Invoice.InvoiceNumber))

	if len(failed) > 0 {
		lots := make([]string, len(failed))
		for i, id := range failed {
			lots[i] = id.String()
		}
		s.notify.Warning(ctx, "Inventory not fully updated",
			fmt.Sprintf("Order %s was created, but stock could not be decremented for lot(s) %s. The updates were queued for retry.",
				created.Order.OrderNumber, strings.Join(lots, ", ")))
	}

	return &CreateOrderResult{OrderWithInvoice: *created, FailedLots: failed}, nil
}

// decrementAll attempts one decrement per lot and returns the lots that
// failed. Lines sharing a lot are summed since the ledger keeps a single
// movement per order and lot.
func (s *Service) decrementAll(ctx context.Context, items []domain.OrderItem, ref domain.MovementReference) []uuid.UUID {
	var failed []uuid.UUID
	for _, it := range perLot(items) {
		err := s.ledger.Decrement(ctx, it.LotID, it.Quantity, ref)
		if err == nil {
			continue
		}

		failed = append(failed, it.LotID)
		s.metrics.RecordDependentWriteFailure("order_decrement")
		s.log.WarnContext(ctx, "stock decrement failed",
			slog.String("order_id", ref.ID.String()),
			slog.String("lot_id", it.LotID.String()),
			slog.String("quantity", it.Quantity.String()),
			slog.String("error", err.Error()),
		)

		s.enqueue(ctx, domain.OutboxInventoryDecrement, it, ref, err)
	}
	return failed
}

func (s *Service) enqueue(ctx context.Context, kind domain.OutboxKind, it domain.OrderItem, ref domain.MovementReference, cause error) {
	reason := cause.Error()
	entry := domain.OutboxEntry{
		ID:          uuid.New(),
		Kind:        kind,
		LotID:       it.LotID,
		Quantity:    it.Quantity,
		Reference:   ref,
		Status:      domain.OutboxPending,
		MaxAttempts: s.cfg.OutboxMaxAttempts,
		LastError:   &reason,
	}
	if err := s.outbox.Enqueue(ctx, entry); err != nil {
		s.log.ErrorContext(ctx, "enqueue dependent write",
			slog.String("lot_id", it.LotID.String()),
			slog.String("reference_id", ref.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// perLot merges lines that draw on the same lot, keeping first-seen order.
func perLot(items []domain.OrderItem) []domain.OrderItem {
	merged := make([]domain.OrderItem, 0, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		if i, ok := index[it.LotID]; ok {
			merged[i].Quantity = merged[i].Quantity.Add(it.Quantity)
			continue
		}
		index[it.LotID] = len(merged)
		merged = append(merged, it)
	}
	return merged
}
