package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"gradinghub/internal/domain"
	"gradinghub/internal/errdefs"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditServiceInterface interface {
	GetAudit(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
	Bookmark(ctx context.Context, actor string, assignmentID uuid.UUID) (*domain.Bookmark, error)
}

type auditService struct {
	audit AuditTrail
}

func NewAuditService(audit AuditTrail) AuditServiceInterface {
	return &auditService{audit: audit}
}

func (s *auditService) GetAudit(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	return s.audit.ListRecent(ctx, limit)
}

// Bookmark reconstructs a grader's last working position within an
// assignment from their own claim history. No active claim is a normal
// outcome: the bookmark comes back empty, not as an error.
func (s *auditService) Bookmark(ctx context.Context, actor string, assignmentID uuid.UUID) (*domain.Bookmark, error) {
	id, lastOpened, err := s.audit.LastClaimedSubmission(ctx, actor, assignmentID)
	if err != nil {
		if errors.Is(err, errdefs.ErrNotFound) {
			return &domain.Bookmark{}, nil
		}
		return nil, err
	}
	return &domain.Bookmark{SubmissionID: &id, LastOpenedAt: lastOpened}, nil
}
