package domain

import "github.com/google/uuid"

// Student is a roster entry. The roster is owned by the course CRUD layer;
// this core only reads it to verify candidate ids and to decorate queue
// listings with names.
type Student struct {
	CourseID  uuid.UUID
	StudentID string
	Name      string
}
