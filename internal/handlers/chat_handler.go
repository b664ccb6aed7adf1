package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"alfredoptarigan/cv-assistant/internal/models"
	"alfredoptarigan/cv-assistant/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// HandleChat handles POST /chat
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	reply, err := h.chatService.Send(c.UserContext(), req.UserID, req.Question)
	if err != nil {
		return err
	}

	return c.JSON(models.ChatResponse{Response: reply})
}

// HandleHistory handles GET /chat_history/:user_id
func (h *ChatHandler) HandleHistory(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Params("user_id"))

	return c.JSON(h.chatService.History(userID))
}

// HandleClearHistory handles POST /clear_history
func (h *ChatHandler) HandleClearHistory(c *fiber.Ctx) error {
	var req models.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	h.chatService.Clear(req.UserID)

	return c.JSON(models.StatusResponse{Status: "success"})
}
