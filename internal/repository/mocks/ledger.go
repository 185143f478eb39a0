package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gradinghub/internal/domain"
	"gradinghub/internal/repository"
)

type LedgerRepository struct {
	mock.Mock
}

func (m *LedgerRepository) Create(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

func (m *LedgerRepository) ListQueue(ctx context.Context, assignmentID uuid.UUID) ([]*domain.QueueItem, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QueueItem), args.Error(1)
}

func (m *LedgerRepository) ListUnmatched(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Submission), args.Error(1)
}

func (m *LedgerRepository) Claim(ctx context.Context, id uuid.UUID, actor string) (repository.ClaimOutcome, string, error) {
	args := m.Called(ctx, id, actor)
	return args.Get(0).(repository.ClaimOutcome), args.String(1), args.Error(2)
}

func (m *LedgerRepository) Release(ctx context.Context, id uuid.UUID, actor string) (bool, string, error) {
	args := m.Called(ctx, id, actor)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *LedgerRepository) ForceClaim(ctx context.Context, id uuid.UUID, actor string) (*string, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *LedgerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *LedgerRepository) SetStudent(ctx context.Context, id uuid.UUID, studentID string, method domain.MatchMethod) error {
	args := m.Called(ctx, id, studentID, method)
	return args.Error(0)
}

func (m *LedgerRepository) Quarantine(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *LedgerRepository) Touch(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
