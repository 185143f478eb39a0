package domain

// Status is the grading lifecycle of a submission. Matched-ness is not a
// status: it lives in StudentID/MatchMethod so that claiming and manual
// matching compose independently.
type Status string

const (
	StatusUnstarted  Status = "unstarted"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusFlagged    Status = "flagged"
	StatusError      Status = "error"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusUnstarted, StatusInProgress, StatusDone, StatusFlagged, StatusError:
		return true
	default:
		return false
	}
}

func ToStatus(status string) Status {
	s := Status(status)
	if s.IsValid() {
		return s
	}
	return ""
}

// MatchMethod records which resolver strategy attached a student id.
type MatchMethod string

const (
	MatchMethodFilename MatchMethod = "filename"
	MatchMethodSidecar  MatchMethod = "sidecar"
	MatchMethodManual   MatchMethod = "manual"
)

// Outcome is the per-archive result of an ingestion batch.
type Outcome string

const (
	OutcomeMatched   Outcome = "matched"
	OutcomeUnmatched Outcome = "unmatched"
	OutcomeError     Outcome = "error"
)
