package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vamsidulam/aiprofessor-hub/backend/config"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

type AuthController struct {
	Cfg *config.Config
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{Cfg: cfg}
}

// CreateSession issues a token for a new anonymous viewer.
func (ac *AuthController) CreateSession(c *fiber.Ctx) error {
	viewerID := uuid.New().String()
	token, err := utils.GenerateJWTToken(viewerID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not create session")
	}

	return utils.Created(c, fiber.Map{
		"token":    token,
		"viewerId": viewerID,
	})
}
