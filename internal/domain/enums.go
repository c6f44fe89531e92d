package domain

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusDraft        OrderStatus = "draft"
	OrderStatusConfirmed    OrderStatus = "confirmed"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusReady        OrderStatus = "ready"
	OrderStatusDispatched   OrderStatus = "dispatched"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

func (s OrderStatus) String() string { return string(s) }

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusInProduction, OrderStatusReady,
		OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

var orderTransitions = map[OrderStatus]OrderStatus{
	OrderStatusDraft:        OrderStatusConfirmed,
	OrderStatusConfirmed:    OrderStatusInProduction,
	OrderStatusInProduction: OrderStatusReady,
	OrderStatusReady:        OrderStatusDispatched,
	OrderStatusDispatched:   OrderStatusDelivered,
}

// CanTransitionTo reports whether the order may move from s to next.
// Forward moves follow the linear lifecycle; cancellation is allowed from
// every non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderTransitions[s] == next
}

// PaymentStatus represents how much of an order has been paid.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// InvoiceStatus represents the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusIssued        InvoiceStatus = "issued"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) String() string { return string(s) }

// BatchStatus represents the state of a production batch.
type BatchStatus string

const (
	BatchStatusInProgress   BatchStatus = "in_progress"
	BatchStatusQualityCheck BatchStatus = "quality_check"
	BatchStatusApproved     BatchStatus = "approved"
	BatchStatusCompleted    BatchStatus = "completed"
)

func (s BatchStatus) String() string { return string(s) }

func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusInProgress, BatchStatusQualityCheck, BatchStatusApproved, BatchStatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a batch may move from s to next:
// in_progress -> quality_check -> approved, or in_progress -> completed.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	switch s {
	case BatchStatusInProgress:
		return next == BatchStatusQualityCheck || next == BatchStatusCompleted
	case BatchStatusQualityCheck:
		return next == BatchStatusApproved
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleManager  UserRole = "manager"
	UserRoleOperator UserRole = "operator"
	UserRoleViewer   UserRole = "viewer"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleOperator, UserRoleViewer:
		return true
	}
	return false
}

// ElevatedRoles may read audit trails and manage integrity findings.
var ElevatedRoles = []UserRole{UserRoleAdmin, UserRoleManager}

// WriterRoles may record orders and production batches.
var WriterRoles = []UserRole{UserRoleAdmin, UserRoleManager, UserRoleOperator}

// AuditAction is the kind of privileged mutation recorded in the audit trail.
type AuditAction string

const (
	AuditActionRoleChange        AuditAction = "role_change"
	AuditActionPermissionChange  AuditAction = "permission_change"
	AuditActionProfileUpdate     AuditAction = "profile_update"
	AuditActionDesignationChange AuditAction = "designation_change"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionRoleChange, AuditActionPermissionChange, AuditActionProfileUpdate, AuditActionDesignationChange:
		return true
	}
	return false
}

// IsElevated reports whether r is one of ElevatedRoles.
func (r UserRole) IsElevated() bool {
	for _, e := range ElevatedRoles {
		if r == e {
			return true
		}
	}
	return false
}
