package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gradinghub/internal/domain"
)

type AuditTrail struct {
	mock.Mock
}

func (m *AuditTrail) Append(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditTrail) ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditEntry), args.Error(1)
}

func (m *AuditTrail) LastClaimedSubmission(ctx context.Context, actor string, assignmentID uuid.UUID) (uuid.UUID, *time.Time, error) {
	args := m.Called(ctx, actor, assignmentID)
	var ts *time.Time
	if args.Get(1) != nil {
		ts = args.Get(1).(*time.Time)
	}
	return args.Get(0).(uuid.UUID), ts, args.Error(2)
}
