package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"alfredoptarigan/cv-assistant/internal/models"
	"alfredoptarigan/cv-assistant/internal/repositories"
	"alfredoptarigan/cv-assistant/internal/services"
)

type UploadHandler struct {
	sessions    repositories.SessionRepository
	pdfParser   services.PDFParserService
	maxFileSize int64
	log         *zap.Logger
}

func NewUploadHandler(
	sessions repositories.SessionRepository,
	pdfParser services.PDFParserService,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	if log == nil {
		log = zap.NewNop()
	}

	return &UploadHandler{
		sessions:    sessions,
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// HandleUploadCV handles POST /upload-cv/?user_id=...
func (h *UploadHandler) HandleUploadCV(c *fiber.Ctx) error {
	userID := strings.TrimSpace(utils.CopyString(c.Query("user_id")))
	if userID == "" {
		return services.NewValidationError("user_id query parameter is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return services.NewValidationError("file is required")
	}

	// Reject before anything is read or extracted.
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return services.NewValidationError("Only PDF files are allowed")
	}

	if file.Size > h.maxFileSize {
		return services.NewValidationError("CV file too large. Max size: %d bytes", h.maxFileSize)
	}

	data, err := readFormFile(file)
	if err != nil {
		return err
	}

	text, err := h.pdfParser.ExtractText(data)
	if err != nil {
		h.log.Error("CV extraction failed",
			zap.String("user_id", userID),
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		return err
	}

	h.sessions.AddCV(userID, file.Filename, text)
	h.log.Info("CV uploaded",
		zap.String("user_id", userID),
		zap.String("filename", file.Filename),
		zap.Int("characters", len([]rune(text))),
	)

	return c.JSON(models.UploadResponse{
		Message:  "CV uploaded and processed successfully",
		Filename: file.Filename,
	})
}

// HandleListCVs handles GET /cvs/:user_id
func (h *UploadHandler) HandleListCVs(c *fiber.Ctx) error {
	userID := utils.CopyString(c.Params("user_id"))

	cvs := h.sessions.CVsFor(userID)
	summaries := make([]models.CVSummary, 0, len(cvs))
	for _, cv := range cvs {
		summaries = append(summaries, models.CVSummary{
			Filename:   cv.Filename,
			Characters: len([]rune(cv.Text)),
		})
	}

	return c.JSON(summaries)
}

// HandleClearCVs handles POST /clear_cvs
func (h *UploadHandler) HandleClearCVs(c *fiber.Ctx) error {
	var req models.UserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	h.sessions.ClearCVs(req.UserID)

	return c.JSON(models.StatusResponse{Status: "success"})
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return data, nil
}
