package ports

import (
	"context"
	"time"

	"github.com/blogcms/admin-api/internal/core/domain"
)

// AuditRepository persists the auth_events audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
	// LastLogin returns the timestamp of the most recent successful login,
	// or the zero time when none has been recorded.
	LastLogin(ctx context.Context) (time.Time, error)
}
