package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vamsidulam/aiprofessor-hub/backend/professor"
	"github.com/vamsidulam/aiprofessor-hub/backend/utils"
)

type ChatController struct {
	Responder professor.Responder
	Logger    *utils.Logger
}

func NewChatController(r professor.Responder, logger *utils.Logger) *ChatController {
	return &ChatController{Responder: r, Logger: logger}
}

func (cc *ChatController) Greeting(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, cc.Responder.Greeting())
}

func (cc *ChatController) SendMessage(c *fiber.Ctx) error {
	var input struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	reply, err := cc.Responder.Reply(c.UserContext(), input.Message)
	if err != nil {
		if errors.Is(err, professor.ErrEmptyMessage) {
			return utils.BadRequest(c, "Message is empty")
		}
		cc.Logger.Error("professor reply failed", "error", err)
		return utils.InternalServerError(c, "Could not get a reply")
	}
	return utils.Success(c, fiber.StatusOK, reply)
}
