// Package notify delivers short user-facing messages produced while an
// operation runs. Messages are logged and, when the context carries an
// Inbox, collected so the transport layer can return them to the caller.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// Notifier emits success, warning and error messages.
type Notifier struct {
	log *slog.Logger
}

// New creates a Notifier.
func New(logger *slog.Logger) *Notifier {
	return &Notifier{log: logger.With("component", "notify")}
}

func (n *Notifier) Success(ctx context.Context, title, message string) {
	n.emit(ctx, domain.NotificationSuccess, slog.LevelInfo, title, message)
}

func (n *Notifier) Warning(ctx context.Context, title, message string) {
	n.emit(ctx, domain.NotificationWarning, slog.LevelWarn, title, message)
}

func (n *Notifier) Error(ctx context.Context, title, message string) {
	n.emit(ctx, domain.NotificationError, slog.LevelError, title, message)
}

func (n *Notifier) emit(ctx context.Context, level domain.NotificationLevel, logLevel slog.Level, title, message string) {
	n.log.Log(ctx, logLevel, "notification",
		slog.String("level", string(level)),
		slog.String("title", title),
		slog.String("message", message),
	)
	if inbox := InboxFromCtx(ctx); inbox != nil {
		inbox.add(domain.Notification{Level: level, Title: title, Message: message})
	}
}

// Inbox collects the notifications emitted while serving one request.
type Inbox struct {
	mu    sync.Mutex
	items []domain.Notification
}

type inboxKey struct{}

// WithInbox returns a context carrying a fresh Inbox.
func WithInbox(ctx context.Context) (context.Context, *Inbox) {
	inbox := &Inbox{}
	return context.WithValue(ctx, inboxKey{}, inbox), inbox
}

// InboxFromCtx returns the Inbox stored in ctx, or nil.
func InboxFromCtx(ctx context.Context) *Inbox {
	inbox, _ := ctx.Value(inboxKey{}).(*Inbox)
	return inbox
}

func (i *Inbox) add(n domain.Notification) {
	i.mu.Lock()
	i.items = append(i.items, n)
	i.mu.Unlock()
}

// Items returns a copy of the collected notifications in emission order.
func (i *Inbox) Items() []domain.Notification {
	if i == nil {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]domain.Notification, len(i.items))
	copy(out, i.items)
	return out
}
