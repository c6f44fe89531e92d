package audittrail

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// auditRepo defines the audit log persistence needed by the recorder.
type auditRepo interface {
	Create(ctx context.Context, e domain.AuditLogEntry) (*domain.AuditLogEntry, error)
	List(ctx context.Context, f domain.AuditLogFilter) ([]domain.AuditLogEntry, int, error)
	CountRoleChangesSince(ctx context.Context, subject uuid.UUID, since time.Time) (int, error)
}

// userRepo defines the user persistence needed for role management.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	CountByRole(ctx context.Context, role domain.UserRole) (int, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	UpdateDesignation(ctx context.Context, id uuid.UUID, designation *string) (*domain.User, error)
}

// txManager defines the transaction manager interface needed by the recorder.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	Success(ctx context.Context, title, message string)
	Warning(ctx context.Context, title, message string)
	Error(ctx context.Context, title, message string)
}

// RoleGuard limits how often one user's role may change.
type RoleGuard struct {
	MaxChanges int
	Window     time.Duration
}

// Service records privileged mutations and performs role management.
type Service struct {
	log    *slog.Logger
	audit  auditRepo
	users  userRepo
	tx     txManager
	notify notifier
	guard  RoleGuard
	now    func() time.Time
}

// NewService creates a new audit trail service instance.
func NewService(
	logger *slog.Logger,
	audit auditRepo,
	users userRepo,
	tx txManager,
	notify notifier,
	guard RoleGuard,
) *Service {
	return &Service{
		log:    logger.With("service", "audittrail"),
		audit:  audit,
		users:  users,
		tx:     tx,
		notify: notify,
		guard:  guard,
		now:    time.Now,
	}
}
