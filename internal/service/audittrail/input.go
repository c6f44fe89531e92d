package audittrail

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage keeps (page-1)*pageSize well inside int range on any platform.
	maxPage = 10_000
)

// CreateAuditLogInput holds parameters for recording one audit entry.
type CreateAuditLogInput struct {
	Subject     uuid.UUID
	Action      domain.AuditAction
	OldValues   map[string]any
	NewValues   map[string]any
	PerformedBy uuid.UUID
	Metadata    map[string]any
}

// Validate validates the create audit log input.
func (i CreateAuditLogInput) Validate() error {
	var errs []domain.FieldError

	if i.Subject == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "invalid value"})
	}
	if i.PerformedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "performed_by", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// normalizeFilter applies paging defaults and validates the filter.
func normalizeFilter(f domain.AuditLogFilter) (domain.AuditLogFilter, error) {
	var errs []domain.FieldError

	if f.Action != nil && !f.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "invalid value"})
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must not be after to"})
	}
	if f.Page > maxPage {
		errs = append(errs, domain.FieldError{Field: "page", Message: fmt.Sprintf("must be at most %d", maxPage)})
	}
	if len(errs) > 0 {
		return f, &domain.ValidationError{Errors: errs}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.PageSize <= 0:
		f.PageSize = defaultPageSize
	case f.PageSize > maxPageSize:
		f.PageSize = maxPageSize
	}
	return f, nil
}
