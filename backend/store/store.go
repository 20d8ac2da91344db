// Package store holds the canonical in-memory course tree. It is the only
// place where lesson completion can change.
//
// Stored courses are never mutated in place: a write builds a new course
// value and swaps it into the collection, and every read hands out a deep
// copy. Readers therefore see either the state before a write or the state
// after it.
package store

import (
	"fmt"
	"sync"

	"github.com/vamsidulam/aiprofessor-hub/backend/models"
	"github.com/vamsidulam/aiprofessor-hub/backend/progress"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

type Option func(*CourseStore)

// WithLogger sets the logger used for ingestion and completion events.
func WithLogger(l *utils.Logger) Option {
	return func(s *CourseStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRejectConcurrentWriters makes CompleteLesson fail with
// ErrConcurrentModification instead of waiting when another write to the
// same course is in flight.
func WithRejectConcurrentWriters() Option {
	return func(s *CourseStore) {
		s.rejectConcurrent = true
	}
}

type CourseStore struct {
	mu      sync.RWMutex
	courses []models.Course
	index   map[string]int

	writersMu sync.Mutex
	writers   map[string]*sync.Mutex

	rejectConcurrent bool
	logger           *utils.Logger
}

func NewCourseStore(opts ...Option) *CourseStore {
	s := &CourseStore{
		index:   make(map[string]int),
		writers: make(map[string]*sync.Mutex),
		logger:  utils.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddCourse validates the course and appends a private copy of it.
func (s *CourseStore) AddCourse(course models.Course) error {
	if err := Validate(course); err != nil {
		s.logger.Warn("course rejected", "course_id", course.ID, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[course.ID]; exists {
		return fmt.Errorf("%w: %w: %q", ErrInvalidCourseShape, ErrCourseExists, course.ID)
	}
	s.index[course.ID] = len(s.courses)
	s.courses = append(s.courses, course.Clone())

	s.logger.Debug("course added",
		"course_id", course.ID,
		"modules", len(course.Modules),
		"total_lessons", course.TotalLessons,
	)
	return nil
}

// GetCourses returns copies of all courses in insertion order.
func (s *CourseStore) GetCourses() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Course, len(s.courses))
	for i, c := range s.courses {
		out[i] = c.Clone()
	}
	return out
}

func (s *CourseStore) GetCourse(courseID string) (models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[courseID]
	if !ok {
		return models.Course{}, ErrCourseNotFound
	}
	return s.courses[i].Clone(), nil
}

// CompleteLesson marks a lesson complete and returns the recomputed course.
// Completing an already completed lesson changes nothing and returns the
// current course.
func (s *CourseStore) CompleteLesson(courseID, lessonID string) (models.Course, error) {
	unlock, err := s.lockWriter(courseID)
	if err != nil {
		return models.Course{}, err
	}
	defer unlock()

	current, err := s.GetCourse(courseID)
	if err != nil {
		return models.Course{}, err
	}

	mi, li, ok := current.FindLesson(lessonID)
	if !ok {
		return models.Course{}, fmt.Errorf("%w: %q in course %q", ErrLessonNotFound, lessonID, courseID)
	}
	if current.Modules[mi].Lessons[li].IsCompleted {
		s.logger.Debug("lesson already completed", "course_id", courseID, "lesson_id", lessonID)
		return current, nil
	}

	updated := current.Clone()
	updated.Modules[mi].Lessons[li].IsCompleted = true
	updated.Modules[mi] = progress.RecomputeModule(updated.Modules[mi])
	updated = progress.RecomputeCourse(updated)

	s.mu.Lock()
	s.courses[s.index[courseID]] = updated
	s.mu.Unlock()

	s.logger.Info("lesson completed",
		"course_id", courseID,
		"lesson_id", lessonID,
		"module_progress", updated.Modules[mi].Progress,
		"course_progress", updated.Progress,
	)
	return updated.Clone(), nil
}

// lockWriter serializes writes per course. Unknown courses are reported
// before any lock is created.
func (s *CourseStore) lockWriter(courseID string) (func(), error) {
	s.mu.RLock()
	_, ok := s.index[courseID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrCourseNotFound
	}

	s.writersMu.Lock()
	m, ok := s.writers[courseID]
	if !ok {
		m = &sync.Mutex{}
		s.writers[courseID] = m
	}
	s.writersMu.Unlock()

	if s.rejectConcurrent {
		if !m.TryLock() {
			return nil, fmt.Errorf("%w: course %q", ErrConcurrentModification, courseID)
		}
	} else {
		m.Lock()
	}
	return m.Unlock, nil
}
