package domain

// IngestResult is the per-item outcome of an ingestion batch, in input
// order. A failed item carries Outcome=error and a message; it never
// aborts its siblings.
type IngestResult struct {
	Filename  string  `json:"filename"`
	Outcome   Outcome `json:"outcome"`
	StudentID *string `json:"student_id,omitempty"`
	Message   *string `json:"message,omitempty"`
}

// ArchiveReport is the result of validating an archive without ingesting
// it.
type ArchiveReport struct {
	IsValid       bool    `json:"is_valid"`
	FileCount     int     `json:"file_count"`
	TotalSize     int64   `json:"total_size"`
	BombSuspected bool    `json:"bomb_suspected"`
	Message       *string `json:"message,omitempty"`
}
