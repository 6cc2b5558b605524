package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blogcms/admin-api/internal/core/domain"
	"github.com/blogcms/admin-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the AuditService that persists events to the
// audit trail. In production it sits behind the queue dispatcher so the
// request path never waits on the write.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, event domain.AuthEvent) error {
	if event.Action == "" {
		return fmt.Errorf("record audit event: empty action")
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("actor", event.Actor).
		Str("action", event.Action).
		Str("subject", event.Subject).
		Msg("audit event recorded")

	return nil
}
