package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/vamsidulam/aiprofessor-hub/backend/config"
	"github.com/vamsidulam/aiprofessor-hub/backend/generator"
	"github.com/vamsidulam/aiprofessor-hub/backend/middleware"
	"github.com/vamsidulam/aiprofessor-hub/backend/professor"
	"github.com/vamsidulam/aiprofessor-hub/backend/repository"
	"github.com/vamsidulam/aiprofessor-hub/backend/routes"
	"github.com/vamsidulam/aiprofessor-hub/backend/store"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	courseStore := store.NewCourseStore(store.WithLogger(logger.With("component", "store")))
	deps := routes.Deps{
		Store:     courseStore,
		Generator: generator.NewMockGenerator(cfg.GenerationDelay),
		Responder: professor.NewMockResponder(cfg.ChatReplyDelay),
		Logger:    logger,
	}

	// Optional snapshot mirror
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatal("Error initializing database", "driver", cfg.DBDriver, "error", err)
	}
	if db != nil {
		repo := repository.NewCourseRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			logger.Fatal("Error migrating database", "error", err)
		}
		saved, err := repo.LoadCourses(context.Background())
		if err != nil {
			logger.Fatal("Error loading courses", "error", err)
		}
		for _, course := range saved {
			if err := courseStore.AddCourse(course); err != nil {
				logger.Warn("Skipping stored course", "course_id", course.ID, "error", err)
			}
		}
		logger.Info("Courses restored", "count", len(courseStore.GetCourses()))
		deps.Mirror = repo
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger.With("component", "http")))

	// Setup routes
	routes.SetupRoutes(app, cfg, deps)

	// Start server
	logger.Info("Server starting", "port", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Server stopped", "error", err)
	}
}
