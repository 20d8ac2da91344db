package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vamsidulam/aiprofessor-hub/backend/config"
	"github.com/vamsidulam/aiprofessor-hub/backend/controllers"
	"github.com/vamsidulam/aiprofessor-hub/backend/generator"
	"github.com/vamsidulam/aiprofessor-hub/backend/middleware"
	"github.com/vamsidulam/aiprofessor-hub/backend/professor"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

type Deps struct {
	Store     controllers.CourseStore
	Generator generator.Producer
	Responder professor.Responder
	// Mirror may be nil.
	Mirror controllers.CourseMirror
	Logger *utils.Logger
}

func SetupRoutes(app *fiber.App, cfg *config.Config, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = utils.NopLogger()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	if cfg.JWTSecret != "" {
		authController := controllers.NewAuthController(cfg)
		app.Post("/api/auth/session", authController.CreateSession)
	}

	authMiddleware := middleware.AuthMiddleware(cfg)

	// Courses routes
	coursesController := controllers.NewCoursesController(deps.Store, deps.Generator, deps.Mirror, logger)
	courses := app.Group("/api/courses")
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/", authMiddleware, coursesController.CreateCourse)
	courses.Post("/generate", authMiddleware, coursesController.GenerateCourse)
	courses.Post("/:id/lessons/:lessonId/complete", authMiddleware, coursesController.CompleteLesson)

	// Progress routes
	progressController := controllers.NewProgressController(deps.Store)
	app.Get("/api/progress/overview", progressController.GetProgressOverview)

	// Chat routes
	chatController := controllers.NewChatController(deps.Responder, logger)
	app.Get("/api/chat/greeting", chatController.Greeting)
	app.Post("/api/chat", authMiddleware, chatController.SendMessage)
}
