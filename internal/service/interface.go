package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gradinghub/internal/domain"
	"gradinghub/internal/repository"
)

// LedgerRepository is the durable submission ledger the services mutate.
// Claim and Release are atomic conditional updates at the storage layer;
// see repository.SubmissionRepository.
type LedgerRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ListQueue(ctx context.Context, assignmentID uuid.UUID) ([]*domain.QueueItem, error)
	ListUnmatched(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error)
	Claim(ctx context.Context, id uuid.UUID, actor string) (repository.ClaimOutcome, string, error)
	Release(ctx context.Context, id uuid.UUID, actor string) (bool, string, error)
	ForceClaim(ctx context.Context, id uuid.UUID, actor string) (*string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error
	SetStudent(ctx context.Context, id uuid.UUID, studentID string, method domain.MatchMethod) error
	Quarantine(ctx context.Context, id uuid.UUID, reason string) error
	Touch(ctx context.Context, id uuid.UUID) error
}

// AuditTrail is the append-only action log plus its derived reads.
type AuditTrail interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
	LastClaimedSubmission(ctx context.Context, actor string, assignmentID uuid.UUID) (uuid.UUID, *time.Time, error)
}

// RosterRepository verifies candidate student ids against the course
// roster.
type RosterRepository interface {
	Contains(ctx context.Context, courseID uuid.UUID, studentID string) (bool, error)
}

// AssignmentDirectory resolves an assignment to its owning course.
type AssignmentDirectory interface {
	CourseID(ctx context.Context, assignmentID uuid.UUID) (uuid.UUID, error)
}

// EventPublisher mirrors the kafka producer surface; a nil publisher
// disables events.
type EventPublisher interface {
	Send(ctx context.Context, topic string, message interface{}) error
}
