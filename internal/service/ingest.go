package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gradinghub/internal/archive"
	"gradinghub/internal/domain"
	"gradinghub/pkg/logger"
)

type IngestionServiceInterface interface {
	Ingest(ctx context.Context, assignmentID uuid.UUID, archivePaths []string) ([]domain.IngestResult, error)
	ValidateArchive(ctx context.Context, path string) domain.ArchiveReport
}

type IngestionConfig struct {
	CacheRoot string
	Limits    archive.Limits
	Workers   int
	Topic     string
}

type ingestionService struct {
	ledger      LedgerRepository
	assignments AssignmentDirectory
	resolver    *Resolver
	publisher   EventPublisher
	cfg         IngestionConfig
	logger      *logger.Logger
}

func NewIngestionService(
	ledger LedgerRepository,
	assignments AssignmentDirectory,
	resolver *Resolver,
	publisher EventPublisher,
	cfg IngestionConfig,
	log *logger.Logger,
) IngestionServiceInterface {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &ingestionService{
		ledger:      ledger,
		assignments: assignments,
		resolver:    resolver,
		publisher:   publisher,
		cfg:         cfg,
		logger:      log,
	}
}

// Ingest processes each archive independently: hash, extract if the
// digest is not cached yet, resolve identity against the course roster,
// append one ledger row. One archive's failure never blocks or rolls
// back its siblings; results come back in input order.
func (s *ingestionService) Ingest(ctx context.Context, assignmentID uuid.UUID, archivePaths []string) ([]domain.IngestResult, error) {
	courseID, err := s.assignments.CourseID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("resolving course for assignment %s: %w", assignmentID, err)
	}

	type job struct {
		index int
		path  string
	}

	results := make([]domain.IngestResult, len(archivePaths))
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < s.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = s.processArchive(ctx, courseID, assignmentID, j.path)
			}
		}()
	}

	for i, path := range archivePaths {
		jobs <- job{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	s.publishBatch(ctx, assignmentID, results)

	return results, nil
}

func (s *ingestionService) processArchive(ctx context.Context, courseID, assignmentID uuid.UUID, path string) domain.IngestResult {
	filename := filepath.Base(path)

	digest, _, err := archive.HashFile(path)
	if err != nil {
		return errorResult(filename, fmt.Sprintf("failed to hash: %v", err))
	}

	destDir := filepath.Join(s.cfg.CacheRoot, assignmentID.String(), digest)
	written, err := archive.Extract(path, destDir, s.cfg.Limits)
	if err != nil {
		s.logger.Warn("extraction rejected",
			zap.String("filename", filename),
			zap.String("digest", digest),
			zap.Error(err),
		)
		return errorResult(filename, fmt.Sprintf("extraction failed: %v", err))
	}

	studentID, method, err := s.resolver.Resolve(ctx, filename, destDir, courseID)
	if err != nil {
		return errorResult(filename, fmt.Sprintf("roster lookup failed: %v", err))
	}

	submission := &domain.Submission{
		AssignmentID:   assignmentID,
		StudentID:      studentID,
		Status:         domain.StatusUnstarted,
		SourceDigest:   digest,
		ExtractionPath: destDir,
	}
	if studentID != nil {
		submission.MatchMethod = &method
	}

	if err := s.ledger.Create(ctx, submission); err != nil {
		return errorResult(filename, fmt.Sprintf("ledger insert failed: %v", err))
	}

	result := domain.IngestResult{
		Filename:  filename,
		Outcome:   domain.OutcomeUnmatched,
		StudentID: studentID,
	}
	if studentID != nil {
		result.Outcome = domain.OutcomeMatched
	}
	if !written {
		msg := "identical archive already in cache; extraction reused"
		result.Message = &msg
	}
	return result
}

func (s *ingestionService) ValidateArchive(_ context.Context, path string) domain.ArchiveReport {
	return archive.Validate(path, s.cfg.Limits)
}

func (s *ingestionService) publishBatch(ctx context.Context, assignmentID uuid.UUID, results []domain.IngestResult) {
	if s.publisher == nil {
		return
	}

	message := map[string]interface{}{
		"event":         domain.ActionIngest,
		"assignment_id": assignmentID,
		"results":       results,
	}
	if err := s.publisher.Send(ctx, s.cfg.Topic, message); err != nil {
		s.logger.Warnf("failed to publish ingest event for assignment %s: %v", assignmentID, err)
	}
}

func errorResult(filename, message string) domain.IngestResult {
	return domain.IngestResult{
		Filename: filename,
		Outcome:  domain.OutcomeError,
		Message:  &message,
	}
}
