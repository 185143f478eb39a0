package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"gradinghub/internal/domain"
)

// Resolver derives a candidate student id for an extracted submission.
// Strategies run in order, first hit wins; any candidate must pass the
// roster gate before it is trusted. No match is a normal outcome, not an
// error.
type Resolver struct {
	pattern *regexp.Regexp
	sidecar string
	roster  RosterRepository
}

func NewResolver(pattern *regexp.Regexp, sidecarFilename string, roster RosterRepository) *Resolver {
	return &Resolver{
		pattern: pattern,
		sidecar: sidecarFilename,
		roster:  roster,
	}
}

// Resolve returns the verified student id and the strategy that produced
// it, or (nil, "") when the submission stays unmatched. The only error
// case is a roster read failure.
func (r *Resolver) Resolve(ctx context.Context, filename, extractedDir string, courseID uuid.UUID) (*string, domain.MatchMethod, error) {
	candidate := r.pattern.FindString(filename)
	method := domain.MatchMethodFilename

	if candidate == "" {
		candidate = r.sidecarCandidate(extractedDir)
		method = domain.MatchMethodSidecar
	}

	if candidate == "" {
		return nil, "", nil
	}

	// Roster gate: a plausible but unknown id is discarded, not an error.
	ok, err := r.roster.Contains(ctx, courseID, candidate)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", nil
	}

	return &candidate, method, nil
}

func (r *Resolver) sidecarCandidate(extractedDir string) string {
	content, err := os.ReadFile(filepath.Join(extractedDir, r.sidecar))
	if err != nil {
		return ""
	}
	return r.pattern.FindString(strings.TrimSpace(string(content)))
}
