package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gradinghub/internal/domain"
	"gradinghub/internal/repository"
	"gradinghub/pkg/logger"
)

type CoordinationServiceInterface interface {
	Claim(ctx context.Context, submissionID uuid.UUID, actor string) error
	Release(ctx context.Context, submissionID uuid.UUID, actor string) error
	ForceClaim(ctx context.Context, submissionID uuid.UUID, actor string) error
	UpdateStatus(ctx context.Context, submissionID uuid.UUID, status string, actor *string) error
	ManualMatch(ctx context.Context, submissionID uuid.UUID, studentID, actor string) error
	Quarantine(ctx context.Context, submissionID uuid.UUID, reason, actor string) error
	Touch(ctx context.Context, submissionID uuid.UUID) error
	ListQueue(ctx context.Context, assignmentID uuid.UUID) ([]*domain.QueueItem, error)
	ListUnmatched(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error)
}

type coordinationService struct {
	ledger      LedgerRepository
	audit       AuditTrail
	roster      RosterRepository
	assignments AssignmentDirectory
	publisher   EventPublisher
	topic       string
	logger      *logger.Logger
}

func NewCoordinationService(
	ledger LedgerRepository,
	audit AuditTrail,
	roster RosterRepository,
	assignments AssignmentDirectory,
	publisher EventPublisher,
	topic string,
	log *logger.Logger,
) CoordinationServiceInterface {
	return &coordinationService{
		ledger:      ledger,
		audit:       audit,
		roster:      roster,
		assignments: assignments,
		publisher:   publisher,
		topic:       topic,
		logger:      log,
	}
}

// Claim takes exclusive ownership of a submission. Re-claiming an
// already-held submission is an idempotent no-op with no audit entry; a
// claim held by someone else fails with ErrAlreadyClaimed.
func (s *coordinationService) Claim(ctx context.Context, submissionID uuid.UUID, actor string) error {
	outcome, owner, err := s.ledger.Claim(ctx, submissionID, actor)
	if err != nil {
		return err
	}

	switch outcome {
	case repository.ClaimHeldByCaller:
		return nil
	case repository.ClaimHeldByOther:
		return fmt.Errorf("%w (held by %s)", ErrAlreadyClaimed, owner)
	}

	return s.record(ctx, domain.AuditEntry{
		Actor:      &actor,
		Action:     domain.ActionClaim,
		EntityType: domain.EntitySubmission,
		EntityID:   submissionID.String(),
	})
}

func (s *coordinationService) Release(ctx context.Context, submissionID uuid.UUID, actor string) error {
	released, owner, err := s.ledger.Release(ctx, submissionID, actor)
	if err != nil {
		return err
	}
	if !released {
		return fmt.Errorf("%w (held by %s)", ErrNotOwner, owner)
	}

	return s.record(ctx, domain.AuditEntry{
		Actor:      &actor,
		Action:     domain.ActionRelease,
		EntityType: domain.EntitySubmission,
		EntityID:   submissionID.String(),
	})
}

// ForceClaim is the administrative escape hatch for abandoned claims. It
// always succeeds on an existing submission and records the displaced
// owner in the audit detail.
func (s *coordinationService) ForceClaim(ctx context.Context, submissionID uuid.UUID, actor string) error {
	previous, err := s.ledger.ForceClaim(ctx, submissionID, actor)
	if err != nil {
		return err
	}

	detail := map[string]interface{}{"previous_owner": nil}
	if previous != nil {
		detail["previous_owner"] = *previous
	}

	return s.record(ctx, domain.AuditEntry{
		Actor:      &actor,
		Action:     domain.ActionForceClaim,
		EntityType: domain.EntitySubmission,
		EntityID:   submissionID.String(),
		Detail:     detail,
	})
}

func (s *coordinationService) UpdateStatus(ctx context.Context, submissionID uuid.UUID, status string, actor *string) error {
	parsed := domain.ToStatus(status)
	if parsed == "" {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.ledger.UpdateStatus(ctx, submissionID, parsed); err != nil {
		return err
	}

	return s.record(ctx, domain.AuditEntry{
		Actor:      actor,
		Action:     domain.ActionStatusChange,
		EntityType: domain.EntitySubmission,
		EntityID:   submissionID.String(),
		Detail:     map[string]interface{}{"new_status": string(parsed)},
	})
}

// ManualMatch attaches a roster-verified student id with full confidence,
// the designed way to drain the unmatched queue.
func (s *coordinationService) ManualMatch(ctx context.Context, submissionID uuid.UUID, studentID, actor string) error {
	submission, err := s.ledger.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}

	courseID, err := s.assignments.CourseID(ctx, submission.AssignmentID)
	if err != nil {
		return err
	}

	ok, err := s.roster.Contains(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStudent, studentID)
	}

	if err := s.ledger.SetStudent(ctx, submissionID, studentID, domain.MatchMethodManual); err != nil {
		return err
	}

	return s.record(ctx, domain.AuditEntry{
		Actor:      &actor,
		Action:     domain.ActionManualMatch,
		EntityType: domain.EntitySubmission,
		EntityID:   submissionID.String(),
		Detail:     map[string]interface{}{"student_id": studentID},
	})
}

func (s *coordinationService) Quarantine(ctx context.Context, submissionID uuid.UUID, reason, actor string) error {
	if err := s.ledger.Quarantine(ctx, submissionID, reason); err != nil {
		return err
	}

	return s.record(ctx, domain.AuditEntry{
		Actor:      &actor,
		Action:     domain.ActionQuarantine,
		EntityType: domain.EntitySubmission,
		EntityID:   submissionID.String(),
		Detail:     map[string]interface{}{"reason": reason},
	})
}

// Touch marks the submission as last opened for session resume. Not a
// coordination mutation, so not audited.
func (s *coordinationService) Touch(ctx context.Context, submissionID uuid.UUID) error {
	return s.ledger.Touch(ctx, submissionID)
}

func (s *coordinationService) ListQueue(ctx context.Context, assignmentID uuid.UUID) ([]*domain.QueueItem, error) {
	return s.ledger.ListQueue(ctx, assignmentID)
}

func (s *coordinationService) ListUnmatched(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	return s.ledger.ListUnmatched(ctx, assignmentID)
}

// record appends the audit entry for a committed mutation and mirrors it
// to the event stream when one is configured.
func (s *coordinationService) record(ctx context.Context, entry domain.AuditEntry) error {
	if err := s.audit.Append(ctx, &entry); err != nil {
		return fmt.Errorf("appending audit entry for %s %s: %w", entry.Action, entry.EntityID, err)
	}

	if s.publisher != nil {
		message := map[string]interface{}{
			"event":       entry.Action,
			"entity_type": entry.EntityType,
			"entity_id":   entry.EntityID,
			"actor":       entry.Actor,
			"detail":      entry.Detail,
		}
		if err := s.publisher.Send(ctx, s.topic, message); err != nil {
			s.logger.Warn("failed to publish coordination event",
				zap.String("action", entry.Action),
				zap.String("entity_id", entry.EntityID),
				zap.Error(err),
			)
		}
	}

	return nil
}
