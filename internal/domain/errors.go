package domain

import "errors"

var (
	// ErrInstructorNotFound is returned when a referenced instructor does not exist.
	ErrInstructorNotFound = errors.New("instructor not found")
	// ErrCourseNotFound is returned when a referenced course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrAnswerCountMismatch is returned when a submission does not carry
	// exactly one answer per question. The creation is aborted entirely.
	ErrAnswerCountMismatch = errors.New("answer count does not match question count")
)
