package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vamsidulam/aiprofessor-hub/backend/generator"
	"github.com/vamsidulam/aiprofessor-hub/backend/models"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

type CoursesController struct {
	Store     CourseStore
	Generator generator.Producer
	Mirror    CourseMirror
	Logger    *utils.Logger
}

func NewCoursesController(s CourseStore, g generator.Producer, mirror CourseMirror, logger *utils.Logger) *CoursesController {
	return &CoursesController{Store: s, Generator: g, Mirror: mirror, Logger: logger}
}

func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, cc.Store.GetCourses())
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	course, err := cc.Store.GetCourse(c.Params("id"))
	if err != nil {
		return storeError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

// CreateCourse ingests a complete course tree as-is.
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if err := cc.Store.AddCourse(course); err != nil {
		return storeError(c, err)
	}
	cc.mirror(c.UserContext(), course)

	return utils.Created(c, course)
}

func (cc *CoursesController) GenerateCourse(c *fiber.Ctx) error {
	var input struct {
		Topic string `json:"topic"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	course, err := cc.Generator.ProduceCourse(c.UserContext(), input.Topic)
	if err != nil {
		if errors.Is(err, generator.ErrEmptyTopic) {
			return utils.BadRequest(c, "Please enter a topic to generate a course")
		}
		cc.Logger.Error("course generation failed", "topic", input.Topic, "error", err)
		return utils.InternalServerError(c, "Could not generate course")
	}

	if err := cc.Store.AddCourse(course); err != nil {
		cc.Logger.Error("generated course rejected", "course_id", course.ID, "error", err)
		return storeError(c, err)
	}
	cc.mirror(c.UserContext(), course)

	return utils.Created(c, course)
}

func (cc *CoursesController) CompleteLesson(c *fiber.Ctx) error {
	course, err := cc.Store.CompleteLesson(c.Params("id"), c.Params("lessonId"))
	if err != nil {
		return storeError(c, err)
	}
	cc.mirror(c.UserContext(), course)

	return utils.Success(c, fiber.StatusOK, course)
}

// mirror failures are logged only; the store already holds the new state.
func (cc *CoursesController) mirror(ctx context.Context, course models.Course) {
	if cc.Mirror == nil {
		return
	}
	if err := cc.Mirror.SaveCourse(ctx, course); err != nil {
		cc.Logger.Warn("could not mirror course", "course_id", course.ID, "error", err)
	}
}
