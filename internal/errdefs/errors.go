package errdefs

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation error")

	ErrUnreadableInput = errors.New("unreadable input")
	ErrCorruptArchive  = errors.New("corrupt archive")
	ErrUnsafeArchive   = errors.New("unsafe archive")
)
