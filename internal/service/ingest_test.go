package service_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gradinghub/internal/archive"
	"gradinghub/internal/domain"
	"gradinghub/internal/repository/mocks"
	"gradinghub/internal/service"
	"gradinghub/pkg/logger"
)

func writeZip(t *testing.T, dir, name string, entries map[string][]byte) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for entryName, content := range entries {
		fw, err := w.Create(entryName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

type ingestFixture struct {
	ledger      *mocks.LedgerRepository
	assignments *mocks.AssignmentDirectory
	roster      *mocks.RosterRepository
	created     []*domain.Submission
	svc         service.IngestionServiceInterface
}

func newIngestFixture(t *testing.T, workers int) *ingestFixture {
	t.Helper()

	f := &ingestFixture{
		ledger:      new(mocks.LedgerRepository),
		assignments: new(mocks.AssignmentDirectory),
		roster:      new(mocks.RosterRepository),
	}
	f.ledger.On("Create", mock.Anything, mock.AnythingOfType("*domain.Submission")).
		Run(func(args mock.Arguments) {
			f.created = append(f.created, args.Get(1).(*domain.Submission))
		}).
		Return(nil)

	f.svc = service.NewIngestionService(
		f.ledger,
		f.assignments,
		service.NewResolver(idPattern, "student_id.txt", f.roster),
		nil,
		service.IngestionConfig{
			CacheRoot: t.TempDir(),
			Limits:    archive.Limits{MaxUnpackedBytes: 1 << 30, MaxRatio: 100},
			Workers:   workers,
		},
		logger.NewNop(),
	)
	return f
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	assignmentID := uuid.New()
	courseID := uuid.New()

	t.Run("matched and unmatched in one batch", func(t *testing.T) {
		f := newIngestFixture(t, 2)
		f.assignments.On("CourseID", mock.Anything, assignmentID).Return(courseID, nil)
		f.roster.On("Contains", mock.Anything, courseID, "12345678").Return(true, nil)

		dir := t.TempDir()
		matched := writeZip(t, dir, "12345678_hw1.zip", map[string][]byte{"main.py": []byte("print('hi')\n")})
		unmatched := writeZip(t, dir, "hw1_submission.zip", map[string][]byte{"main.py": []byte("print('yo')\n")})

		results, err := f.svc.Ingest(ctx, assignmentID, []string{matched, unmatched})
		require.NoError(t, err)
		require.Len(t, results, 2)

		require.Equal(t, "12345678_hw1.zip", results[0].Filename)
		require.Equal(t, domain.OutcomeMatched, results[0].Outcome)
		require.NotNil(t, results[0].StudentID)
		require.Equal(t, "12345678", *results[0].StudentID)

		require.Equal(t, "hw1_submission.zip", results[1].Filename)
		require.Equal(t, domain.OutcomeUnmatched, results[1].Outcome)
		require.Nil(t, results[1].StudentID)

		require.Len(t, f.created, 2)
		for _, s := range f.created {
			require.Equal(t, assignmentID, s.AssignmentID)
			require.Equal(t, domain.StatusUnstarted, s.Status)
			require.NotEmpty(t, s.SourceDigest)
			require.DirExists(t, s.ExtractionPath)
		}
	})

	t.Run("sidecar id inside the archive", func(t *testing.T) {
		f := newIngestFixture(t, 1)
		f.assignments.On("CourseID", mock.Anything, assignmentID).Return(courseID, nil)
		f.roster.On("Contains", mock.Anything, courseID, "87654321").Return(true, nil)

		path := writeZip(t, t.TempDir(), "final.zip", map[string][]byte{
			"main.py":        []byte("print('hi')\n"),
			"student_id.txt": []byte("87654321\n"),
		})

		results, err := f.svc.Ingest(ctx, assignmentID, []string{path})
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeMatched, results[0].Outcome)
		require.Len(t, f.created, 1)
		require.NotNil(t, f.created[0].MatchMethod)
		require.Equal(t, domain.MatchMethodSidecar, *f.created[0].MatchMethod)
	})

	t.Run("one bad archive does not block its siblings", func(t *testing.T) {
		f := newIngestFixture(t, 2)
		f.assignments.On("CourseID", mock.Anything, assignmentID).Return(courseID, nil)
		f.roster.On("Contains", mock.Anything, courseID, "12345678").Return(true, nil)

		dir := t.TempDir()
		good := writeZip(t, dir, "12345678_hw1.zip", map[string][]byte{"main.py": []byte("ok\n")})
		corrupt := filepath.Join(dir, "broken.zip")
		require.NoError(t, os.WriteFile(corrupt, []byte("not a zip"), 0o644))
		missing := filepath.Join(dir, "nope.zip")

		results, err := f.svc.Ingest(ctx, assignmentID, []string{corrupt, good, missing})
		require.NoError(t, err)
		require.Len(t, results, 3)

		require.Equal(t, domain.OutcomeError, results[0].Outcome)
		require.NotNil(t, results[0].Message)
		require.Equal(t, domain.OutcomeMatched, results[1].Outcome)
		require.Equal(t, domain.OutcomeError, results[2].Outcome)

		// Only the good archive reached the ledger.
		require.Len(t, f.created, 1)
	})

	t.Run("duplicate bytes reuse the cached extraction", func(t *testing.T) {
		f := newIngestFixture(t, 1)
		f.assignments.On("CourseID", mock.Anything, assignmentID).Return(courseID, nil)
		f.roster.On("Contains", mock.Anything, courseID, "12345678").Return(true, nil)

		dir := t.TempDir()
		content := map[string][]byte{"main.py": []byte("print('hi')\n")}
		first := writeZip(t, dir, "12345678_hw1.zip", content)
		second := filepath.Join(dir, "12345678_resubmit.zip")
		raw, err := os.ReadFile(first)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(second, raw, 0o644))

		results, err := f.svc.Ingest(ctx, assignmentID, []string{first, second})
		require.NoError(t, err)

		require.Nil(t, results[0].Message)
		require.NotNil(t, results[1].Message)

		// Both get a ledger row, pointing at the same extraction.
		require.Len(t, f.created, 2)
		require.Equal(t, f.created[0].SourceDigest, f.created[1].SourceDigest)
		require.Equal(t, f.created[0].ExtractionPath, f.created[1].ExtractionPath)
	})
}

func TestValidateArchive(t *testing.T) {
	f := newIngestFixture(t, 1)

	path := writeZip(t, t.TempDir(), "fine.zip", map[string][]byte{"a.txt": []byte("aaaa")})
	report := f.svc.ValidateArchive(context.Background(), path)
	require.True(t, report.IsValid)
	require.Equal(t, 1, report.FileCount)
}
