package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vamsidulam/aiprofessor-hub/backend/analytics"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

type ProgressController struct {
	Store CourseStore
}

func NewProgressController(s CourseStore) *ProgressController {
	return &ProgressController{Store: s}
}

// GetProgressOverview summarizes progress across every course.
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, analytics.Overview(pc.Store.GetCourses()))
}
