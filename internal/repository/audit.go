package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gradinghub/internal/domain"
	"gradinghub/internal/errdefs"
)

// AuditRepository is the append-only trail of mutating actions. There are
// deliberately no update or delete paths.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
		INSERT INTO audit_log (actor, action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, ts
	`

	var detail []byte
	if entry.Detail != nil {
		var err error
		detail, err = json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("marshaling audit detail: %w", err)
		}
	}

	err := r.db.QueryRowContext(ctx, query,
		entry.Actor,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		detail,
	).Scan(&entry.ID, &entry.TS)

	if err != nil {
		return err
	}
	return nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error) {
	query := `
		SELECT id, ts, actor, action, entity_type, entity_id, detail
		FROM audit_log
		ORDER BY id DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.AuditEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// LastClaimedSubmission derives a grader's bookmark: the most recently
// claimed submission of theirs, within the assignment, that they still
// own and that is still in progress. An explicit view over the audit log
// rather than a separate session table.
func (r *AuditRepository) LastClaimedSubmission(ctx context.Context, actor string, assignmentID uuid.UUID) (uuid.UUID, *time.Time, error) {
	query := `
		SELECT s.id, s.last_opened_at
		FROM audit_log a
		JOIN submissions s ON s.id::text = a.entity_id
		WHERE a.actor = $1 AND a.action = $2 AND a.entity_type = $3
		  AND s.assignment_id = $4 AND s.claimed_by = $1 AND s.status = $5
		ORDER BY a.id DESC
		LIMIT 1
	`

	var id uuid.UUID
	var lastOpened *time.Time
	err := r.db.QueryRowContext(ctx, query,
		actor,
		domain.ActionClaim,
		domain.EntitySubmission,
		assignmentID,
		domain.StatusInProgress,
	).Scan(&id, &lastOpened)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil, errdefs.ErrNotFound
		}
		return uuid.Nil, nil, err
	}
	return id, lastOpened, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.AuditEntry, error) {
	var entry domain.AuditEntry
	var detail []byte
	err := row.Scan(
		&entry.ID,
		&entry.TS,
		&entry.Actor,
		&entry.Action,
		&entry.EntityType,
		&entry.EntityID,
		&detail,
	)
	if err != nil {
		return nil, err
	}

	if len(detail) > 0 {
		if err := json.Unmarshal(detail, &entry.Detail); err != nil {
			return nil, fmt.Errorf("unmarshaling audit detail: %w", err)
		}
	}
	return &entry, nil
}
