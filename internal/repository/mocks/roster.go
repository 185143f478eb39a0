package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RosterRepository struct {
	mock.Mock
}

func (m *RosterRepository) Contains(ctx context.Context, courseID uuid.UUID, studentID string) (bool, error) {
	args := m.Called(ctx, courseID, studentID)
	return args.Bool(0), args.Error(1)
}

type AssignmentDirectory struct {
	mock.Mock
}

func (m *AssignmentDirectory) CourseID(ctx context.Context, assignmentID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, assignmentID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
