package service

import (
	"fmt"

	"gradinghub/internal/errdefs"
)

var (
	ErrAlreadyClaimed = fmt.Errorf("%w: submission already claimed", errdefs.ErrConflict)
	ErrNotOwner       = fmt.Errorf("%w: submission held by another grader", errdefs.ErrConflict)
	ErrInvalidStatus  = fmt.Errorf("%w: invalid status", errdefs.ErrValidation)
	ErrUnknownStudent = fmt.Errorf("%w: student not in course roster", errdefs.ErrValidation)
)
