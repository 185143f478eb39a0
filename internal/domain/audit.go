package domain

import "time"

// AuditEntry is one append-only record of a mutating action. Entries are
// never updated or deleted; ID is assigned by the store and increases
// monotonically.
type AuditEntry struct {
	ID         int64
	TS         time.Time
	Actor      *string
	Action     string
	EntityType string
	EntityID   string
	Detail     map[string]interface{}
}

const (
	ActionClaim        = "claim"
	ActionRelease      = "release"
	ActionForceClaim   = "force_claim"
	ActionStatusChange = "status_change"
	ActionManualMatch  = "manual_match"
	ActionQuarantine   = "quarantine"
	ActionIngest       = "ingest"

	EntitySubmission = "submission"
)
