package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"gradinghub/internal/errdefs"
)

// AssignmentRepository reads assignment records maintained by the CRUD
// layer; the core only needs the owning course for roster scoping.
type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) CourseID(ctx context.Context, assignmentID uuid.UUID) (uuid.UUID, error) {
	query := `
		SELECT course_id
		FROM assignments
		WHERE id = $1
	`

	var courseID uuid.UUID
	err := r.db.QueryRowContext(ctx, query, assignmentID).Scan(&courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, errdefs.ErrNotFound
		}
		return uuid.Nil, err
	}
	return courseID, nil
}
