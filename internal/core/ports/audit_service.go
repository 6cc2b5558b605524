package ports

import (
	"context"

	"github.com/blogcms/admin-api/internal/core/domain"
)

// AuditService records audit events. Implementations are best-effort:
// recording failures are logged, never propagated to the request path.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}
