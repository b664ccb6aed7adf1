package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-assistant/internal/models"
	"alfredoptarigan/cv-assistant/internal/services"
)

type EvaluationHandler struct {
	evaluator services.EvaluatorService
}

func NewEvaluationHandler(evaluator services.EvaluatorService) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator: evaluator,
	}
}

// HandleEvaluateCVs handles POST /evaluate-cvs/
func (h *EvaluationHandler) HandleEvaluateCVs(c *fiber.Ctx) error {
	var req models.EvaluateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	evaluation, err := h.evaluator.EvaluateStored(c.UserContext(), req.UserID, req.JobTitle, req.JobRequirements)
	if err != nil {
		return err
	}

	return c.JSON(models.EvaluateResponse{Evaluation: evaluation})
}

// HandleAnalyzeCVs handles POST /analyze_cvs
func (h *EvaluationHandler) HandleAnalyzeCVs(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	analysis, err := h.evaluator.Analyze(c.UserContext(), req.JobDescription, req.RankingCriteria, req.CVs)
	if err != nil {
		return err
	}

	return c.JSON(models.AnalyzeResponse{Analysis: analysis})
}
