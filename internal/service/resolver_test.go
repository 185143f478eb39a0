package service_test

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gradinghub/internal/domain"
	"gradinghub/internal/repository/mocks"
	"gradinghub/internal/service"
)

var idPattern = regexp.MustCompile(`[0-9]{8}`)

func TestResolver(t *testing.T) {
	ctx := context.Background()
	courseID := uuid.New()

	t.Run("filename strategy with roster hit", func(t *testing.T) {
		roster := new(mocks.RosterRepository)
		roster.On("Contains", mock.Anything, courseID, "12345678").Return(true, nil)

		resolver := service.NewResolver(idPattern, "student_id.txt", roster)
		studentID, method, err := resolver.Resolve(ctx, "12345678_hw1.zip", t.TempDir(), courseID)
		require.NoError(t, err)
		require.NotNil(t, studentID)
		require.Equal(t, "12345678", *studentID)
		require.Equal(t, domain.MatchMethodFilename, method)
	})

	t.Run("roster gate discards unknown ids", func(t *testing.T) {
		roster := new(mocks.RosterRepository)
		roster.On("Contains", mock.Anything, courseID, "99999999").Return(false, nil)

		resolver := service.NewResolver(idPattern, "student_id.txt", roster)
		studentID, _, err := resolver.Resolve(ctx, "99999999_hw1.zip", t.TempDir(), courseID)
		require.NoError(t, err)
		require.Nil(t, studentID)
	})

	t.Run("sidecar strategy when filename has no id", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "student_id.txt"), []byte("  87654321\n"), 0o644))

		roster := new(mocks.RosterRepository)
		roster.On("Contains", mock.Anything, courseID, "87654321").Return(true, nil)

		resolver := service.NewResolver(idPattern, "student_id.txt", roster)
		studentID, method, err := resolver.Resolve(ctx, "hw1_submission.zip", dir, courseID)
		require.NoError(t, err)
		require.NotNil(t, studentID)
		require.Equal(t, "87654321", *studentID)
		require.Equal(t, domain.MatchMethodSidecar, method)
	})

	t.Run("no candidate anywhere", func(t *testing.T) {
		roster := new(mocks.RosterRepository)

		resolver := service.NewResolver(idPattern, "student_id.txt", roster)
		studentID, _, err := resolver.Resolve(ctx, "hw1_submission.zip", t.TempDir(), courseID)
		require.NoError(t, err)
		require.Nil(t, studentID)
		roster.AssertNotCalled(t, "Contains", mock.Anything, mock.Anything, mock.Anything)
	})
}
