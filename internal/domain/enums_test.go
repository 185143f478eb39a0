package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gradinghub/internal/domain"
)

func TestToStatus(t *testing.T) {
	for _, valid := range []string{"unstarted", "in_progress", "done", "flagged", "error"} {
		require.Equal(t, domain.Status(valid), domain.ToStatus(valid), valid)
	}

	for _, invalid := range []string{"", "finished", "IN_PROGRESS", "in progress"} {
		require.Equal(t, domain.Status(""), domain.ToStatus(invalid), invalid)
	}
}

func TestStatusIsValid(t *testing.T) {
	require.True(t, domain.StatusInProgress.IsValid())
	require.False(t, domain.Status("claimed").IsValid())
}
