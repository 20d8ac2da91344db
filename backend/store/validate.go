package store

import (
	"fmt"

	"github.com/vamsidulam/aiprofessor-hub/backend/models"
	"github.com/vamsidulam/aiprofessor-hub/backend/progress"
)

func shapeErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidCourseShape, fmt.Sprintf(format, args...))
}

// Validate checks the structure of a course and that every cached derived
// value matches what the lessons say. Inconsistent input is rejected, never
// repaired.
func Validate(c models.Course) error {
	if c.ID == "" {
		return shapeErr("course id is empty")
	}
	if !c.Difficulty.Valid() {
		return shapeErr("course %q: unknown difficulty %q", c.ID, c.Difficulty)
	}
	if c.EstimatedHours < 0 {
		return shapeErr("course %q: negative estimated hours", c.ID)
	}

	moduleIDs := make(map[string]struct{}, len(c.Modules))
	lessonIDs := make(map[string]struct{})
	for _, m := range c.Modules {
		if m.ID == "" {
			return shapeErr("course %q: module id is empty", c.ID)
		}
		if _, dup := moduleIDs[m.ID]; dup {
			return shapeErr("course %q: duplicate module id %q", c.ID, m.ID)
		}
		moduleIDs[m.ID] = struct{}{}

		if len(m.Lessons) == 0 {
			return shapeErr("module %q has no lessons", m.ID)
		}
		for _, l := range m.Lessons {
			if l.ID == "" {
				return shapeErr("module %q: lesson id is empty", m.ID)
			}
			if _, dup := lessonIDs[l.ID]; dup {
				return shapeErr("course %q: duplicate lesson id %q", c.ID, l.ID)
			}
			lessonIDs[l.ID] = struct{}{}
			if !l.Type.Valid() {
				return shapeErr("lesson %q: unknown kind %q", l.ID, l.Type)
			}
			if l.Duration <= 0 {
				return shapeErr("lesson %q: duration must be positive", l.ID)
			}
		}

		want := progress.RecomputeModule(m)
		if m.Progress != want.Progress || m.IsCompleted != want.IsCompleted {
			return shapeErr("module %q: progress %v/%t does not match lessons (%v/%t)",
				m.ID, m.Progress, m.IsCompleted, want.Progress, want.IsCompleted)
		}
	}

	want := progress.RecomputeCourse(c)
	if c.TotalLessons != want.TotalLessons {
		return shapeErr("course %q: totalLessons %d, lessons present %d", c.ID, c.TotalLessons, want.TotalLessons)
	}
	if c.CompletedLessons != want.CompletedLessons {
		return shapeErr("course %q: completedLessons %d, completed present %d", c.ID, c.CompletedLessons, want.CompletedLessons)
	}
	if c.Progress != want.Progress {
		return shapeErr("course %q: progress %v does not match lessons (%v)", c.ID, c.Progress, want.Progress)
	}
	return nil
}
