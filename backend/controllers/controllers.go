package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vamsidulam/aiprofessor-hub/backend/models"
	"github.com/vamsidulam/aiprofessor-hub/backend/store"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

// CourseStore is the course tree the controllers read and mutate.
type CourseStore interface {
	AddCourse(course models.Course) error
	GetCourses() []models.Course
	GetCourse(courseID string) (models.Course, error)
	CompleteLesson(courseID, lessonID string) (models.Course, error)
}

// CourseMirror receives every course snapshot after it is stored.
type CourseMirror interface {
	SaveCourse(ctx context.Context, course models.Course) error
}

func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrCourseExists):
		return utils.Error(c, fiber.StatusConflict, err)
	case errors.Is(err, store.ErrInvalidCourseShape):
		return utils.Error(c, fiber.StatusUnprocessableEntity, err)
	case errors.Is(err, store.ErrCourseNotFound), errors.Is(err, store.ErrLessonNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, store.ErrConcurrentModification):
		return utils.Error(c, fiber.StatusConflict, err)
	default:
		return utils.InternalServerError(c, "Could not update course")
	}
}
