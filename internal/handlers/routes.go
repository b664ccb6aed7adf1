package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Chat       *ChatHandler
	Upload     *UploadHandler
	Evaluation *EvaluationHandler
}

func (h *Handlers) Register(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	app.Post("/chat", h.Chat.HandleChat)
	app.Get("/chat_history/:user_id", h.Chat.HandleHistory)
	app.Post("/clear_history", h.Chat.HandleClearHistory)

	app.Post("/upload-cv/", h.Upload.HandleUploadCV)
	app.Get("/cvs/:user_id", h.Upload.HandleListCVs)
	app.Post("/clear_cvs", h.Upload.HandleClearCVs)

	app.Post("/evaluate-cvs/", h.Evaluation.HandleEvaluateCVs)
	app.Post("/analyze_cvs", h.Evaluation.HandleAnalyzeCVs)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Recruiter Assistant API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /chat",
				"GET /chat_history/:user_id",
				"POST /clear_history",
				"POST /upload-cv/?user_id=",
				"GET /cvs/:user_id",
				"POST /clear_cvs",
				"POST /evaluate-cvs/",
				"POST /analyze_cvs",
			},
		})
	})
}
