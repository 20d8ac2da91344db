package store

import "errors"

var (
	ErrCourseNotFound         = errors.New("course not found")
	ErrLessonNotFound         = errors.New("lesson not found")
	ErrInvalidCourseShape     = errors.New("invalid course shape")
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrCourseExists is always reported together with ErrInvalidCourseShape.
	ErrCourseExists = errors.New("course already exists")
)
