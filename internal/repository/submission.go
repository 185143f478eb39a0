package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gradinghub/internal/domain"
	"gradinghub/internal/errdefs"
)

// ClaimOutcome is the result of a conditional claim attempt.
type ClaimOutcome int

const (
	// ClaimAcquired means this call's write won and the caller now owns
	// the submission.
	ClaimAcquired ClaimOutcome = iota
	// ClaimHeldByCaller means the caller already owned the submission;
	// nothing was written.
	ClaimHeldByCaller
	// ClaimHeldByOther means a different actor's committed claim was
	// observed; nothing was written.
	ClaimHeldByOther
)

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (id, assignment_id, student_id, match_method, status, source_digest, extraction_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		id,
		submission.AssignmentID,
		submission.StudentID,
		submission.MatchMethod,
		submission.Status,
		submission.SourceDigest,
		submission.ExtractionPath,
		now,
	)

	if err != nil {
		return err
	}

	submission.ID = id
	submission.CreatedAt = now
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `
		SELECT id, assignment_id, student_id, match_method, status, claimed_by, claimed_at,
		       last_opened_at, source_digest, extraction_path, notes, created_at
		FROM submissions
		WHERE id = $1
	`

	var submission domain.Submission
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.AssignmentID,
		&submission.StudentID,
		&submission.MatchMethod,
		&submission.Status,
		&submission.ClaimedBy,
		&submission.ClaimedAt,
		&submission.LastOpenedAt,
		&submission.SourceDigest,
		&submission.ExtractionPath,
		&submission.Notes,
		&submission.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errdefs.ErrNotFound
		}
		return nil, err
	}

	return &submission, nil
}

func (r *SubmissionRepository) ListQueue(ctx context.Context, assignmentID uuid.UUID) ([]*domain.QueueItem, error) {
	query := `
		SELECT s.id, s.student_id, st.name, s.status, s.claimed_by, s.claimed_at
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		LEFT JOIN students st ON st.student_id = s.student_id AND st.course_id = a.course_id
		WHERE s.assignment_id = $1
		ORDER BY st.name ASC NULLS LAST, s.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []*domain.QueueItem
	for rows.Next() {
		var item domain.QueueItem
		err := rows.Scan(
			&item.ID,
			&item.StudentID,
			&item.StudentName,
			&item.Status,
			&item.ClaimedBy,
			&item.ClaimedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *SubmissionRepository) ListUnmatched(ctx context.Context, assignmentID uuid.UUID) ([]*domain.Submission, error) {
	query := `
		SELECT id, assignment_id, student_id, match_method, status, claimed_by, claimed_at,
		       last_opened_at, source_digest, extraction_path, notes, created_at
		FROM submissions
		WHERE assignment_id = $1 AND student_id IS NULL AND status <> $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, assignmentID, domain.StatusError)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var submissions []*domain.Submission
	for rows.Next() {
		var submission domain.Submission
		err := rows.Scan(
			&submission.ID,
			&submission.AssignmentID,
			&submission.StudentID,
			&submission.MatchMethod,
			&submission.Status,
			&submission.ClaimedBy,
			&submission.ClaimedAt,
			&submission.LastOpenedAt,
			&submission.SourceDigest,
			&submission.ExtractionPath,
			&submission.Notes,
			&submission.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, &submission)
	}

	return submissions, rows.Err()
}

// Claim attempts to take ownership with a single conditional UPDATE. The
// update only fires while claimed_by is NULL, so two concurrent claims
// cannot both win: the loser's update matches zero rows and the follow-up
// read observes the committed owner.
func (r *SubmissionRepository) Claim(ctx context.Context, id uuid.UUID, actor string) (ClaimOutcome, string, error) {
	update := `
		UPDATE submissions
		SET claimed_by = $2, claimed_at = now(), status = $3
		WHERE id = $1 AND claimed_by IS NULL
	`

	// A concurrent release between the failed update and the owner read
	// leaves the row unowned again; retry the update in that case.
	for attempt := 0; attempt < 3; attempt++ {
		res, err := r.db.ExecContext(ctx, update, id, actor, domain.StatusInProgress)
		if err != nil {
			return 0, "", err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, "", err
		}
		if affected == 1 {
			return ClaimAcquired, actor, nil
		}

		var owner *string
		err = r.db.QueryRowContext(ctx, `SELECT claimed_by FROM submissions WHERE id = $1`, id).Scan(&owner)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, "", errdefs.ErrNotFound
			}
			return 0, "", err
		}
		if owner == nil {
			continue
		}
		if *owner == actor {
			return ClaimHeldByCaller, actor, nil
		}
		return ClaimHeldByOther, *owner, nil
	}

	return 0, "", fmt.Errorf("claim on %s did not settle", id)
}

// Release clears ownership when the row is unowned or owned by actor.
// Returns the committed owner when a different actor holds the claim.
func (r *SubmissionRepository) Release(ctx context.Context, id uuid.UUID, actor string) (bool, string, error) {
	update := `
		UPDATE submissions
		SET claimed_by = NULL, claimed_at = NULL
		WHERE id = $1 AND (claimed_by IS NULL OR claimed_by = $2)
	`

	res, err := r.db.ExecContext(ctx, update, id, actor)
	if err != nil {
		return false, "", err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, "", err
	}
	if affected == 1 {
		return true, "", nil
	}

	var owner *string
	err = r.db.QueryRowContext(ctx, `SELECT claimed_by FROM submissions WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, "", errdefs.ErrNotFound
		}
		return false, "", err
	}
	if owner == nil {
		// The row was released concurrently; the caller's intent holds.
		return true, "", nil
	}
	return false, *owner, nil
}

// ForceClaim overwrites ownership unconditionally, returning the previous
// owner for the audit detail. Runs in a transaction with a row lock so
// the returned owner is exactly the one that was overwritten.
func (r *SubmissionRepository) ForceClaim(ctx context.Context, id uuid.UUID, actor string) (*string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var previous *string
	err = tx.QueryRowContext(ctx, `SELECT claimed_by FROM submissions WHERE id = $1 FOR UPDATE`, id).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errdefs.ErrNotFound
		}
		return nil, err
	}

	update := `
		UPDATE submissions
		SET claimed_by = $2, claimed_at = now(), status = $3
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, update, id, actor, domain.StatusInProgress); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return previous, nil
}

// UpdateStatus sets the grading status. Leaving in_progress also clears
// ownership so claimed_by never outlives an active grading session.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	query := `
		UPDATE submissions
		SET status = $2,
		    claimed_by = CASE WHEN $2 = $3 THEN claimed_by ELSE NULL END,
		    claimed_at = CASE WHEN $2 = $3 THEN claimed_at ELSE NULL END
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, status, domain.StatusInProgress)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SubmissionRepository) SetStudent(ctx context.Context, id uuid.UUID, studentID string, method domain.MatchMethod) error {
	query := `
		UPDATE submissions
		SET student_id = $2, match_method = $3
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, studentID, method)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SubmissionRepository) Quarantine(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE submissions
		SET status = $2, notes = $3, claimed_by = NULL, claimed_at = NULL
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id, domain.StatusError, reason)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SubmissionRepository) Touch(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE submissions SET last_opened_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errdefs.ErrNotFound
	}
	return nil
}
