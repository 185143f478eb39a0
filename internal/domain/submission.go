package domain

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID             uuid.UUID
	AssignmentID   uuid.UUID
	StudentID      *string
	MatchMethod    *MatchMethod
	Status         Status
	ClaimedBy      *string
	ClaimedAt      *time.Time
	LastOpenedAt   *time.Time
	SourceDigest   string
	ExtractionPath string
	Notes          *string
	CreatedAt      time.Time
}

// QueueItem is the grading-queue projection of a submission: the row plus
// the roster name of the matched student, if any.
type QueueItem struct {
	ID          uuid.UUID
	StudentID   *string
	StudentName *string
	Status      Status
	ClaimedBy   *string
	ClaimedAt   *time.Time
}

// Bookmark points a grader back at the submission they were last working
// on within an assignment. SubmissionID is nil when no claim of theirs is
// still active.
type Bookmark struct {
	SubmissionID *uuid.UUID
	LastOpenedAt *time.Time
}
