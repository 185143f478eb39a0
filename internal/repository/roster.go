package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// RosterRepository reads the course roster maintained by the CRUD layer.
// Membership checks gate every automatic or manual identity match.
type RosterRepository struct {
	db *sql.DB
}

func NewRosterRepository(db *sql.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Contains(ctx context.Context, courseID uuid.UUID, studentID string) (bool, error) {
	query := `
		SELECT 1
		FROM students
		WHERE course_id = $1 AND student_id = $2
	`

	var one int
	err := r.db.QueryRowContext(ctx, query, courseID, studentID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
