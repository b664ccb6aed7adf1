package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/cv-assistant/internal/models"
	"alfredoptarigan/cv-assistant/internal/repositories"
)

type EvaluatorService interface {
	Evaluate(ctx context.Context, cvs []models.CV, jobTitle string, criteria []string) (string, error)
	EvaluateStored(ctx context.Context, userID, jobTitle, requirements string) (string, error)
	Analyze(ctx context.Context, jobDescription string, criteria []string, cvs []models.InlineCV) (string, error)
}

type evaluatorService struct {
	sessions      repositories.SessionRepository
	llm           TextCompleter
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	excerptLimit  int
	log           *zap.Logger
}

func NewEvaluatorService(
	sessions repositories.SessionRepository,
	llm TextCompleter,
	pdfParser PDFParserService,
	excerptLimit int,
	log *zap.Logger,
) EvaluatorService {
	if excerptLimit <= 0 {
		excerptLimit = DefaultExcerptLimit
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &evaluatorService{
		sessions:      sessions,
		llm:           llm,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(excerptLimit),
		excerptLimit:  excerptLimit,
		log:           log,
	}
}

// Evaluate sends every CV in one composite prompt and returns the LLM reply
// verbatim. The reply is not parsed.
func (e *evaluatorService) Evaluate(ctx context.Context, cvs []models.CV, jobTitle string, criteria []string) (string, error) {
	if len(cvs) == 0 {
		return "", ErrNoCVs
	}

	e.logTruncation(cvs)

	prompt := e.promptBuilder.BuildCVRankingPrompt(jobTitle, criteria, cvs)
	e.log.Info("evaluating CVs",
		zap.String("job_title", jobTitle),
		zap.Int("cv_count", len(cvs)),
		zap.Int("criteria_count", len(criteria)),
		zap.Int("prompt_length", len(prompt)),
	)

	evaluation, err := e.llm.CompletePrompt(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate CV evaluation: %w", err)
	}

	return evaluation, nil
}

// EvaluateStored evaluates the CVs the user uploaded earlier, in upload order.
func (e *evaluatorService) EvaluateStored(ctx context.Context, userID, jobTitle, requirements string) (string, error) {
	cvs := e.sessions.CVsFor(userID)
	if len(cvs) == 0 {
		return "", ErrNoCVs
	}

	return e.Evaluate(ctx, cvs, jobTitle, SplitRequirements(requirements))
}

// Analyze ranks CVs that arrive base64 encoded in the request. Nothing is
// read from or written to the session store.
func (e *evaluatorService) Analyze(ctx context.Context, jobDescription string, criteria []string, inline []models.InlineCV) (string, error) {
	if len(inline) == 0 {
		return "", ErrNoCVs
	}

	cvs := make([]models.CV, 0, len(inline))
	for _, item := range inline {
		text, err := e.decodeInline(item)
		if err != nil {
			return "", err
		}
		cvs = append(cvs, models.CV{Filename: item.Filename, Text: text})
	}

	e.logTruncation(cvs)

	prompt := e.promptBuilder.BuildAnalysisPrompt(jobDescription, criteria, cvs)
	e.log.Info("analyzing inline CVs",
		zap.Int("cv_count", len(cvs)),
		zap.Int("criteria_count", len(criteria)),
		zap.Int("prompt_length", len(prompt)),
	)

	analysis, err := e.llm.CompletePrompt(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate CV analysis: %w", err)
	}

	return analysis, nil
}

func (e *evaluatorService) decodeInline(item models.InlineCV) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(item.Content))
	if err != nil {
		return "", NewValidationError("cv %q: content is not valid base64", item.Filename)
	}

	if isPDFType(item.FileType) {
		text, err := e.pdfParser.ExtractText(data)
		if err != nil {
			return "", fmt.Errorf("cv %q: %w", item.Filename, err)
		}
		return text, nil
	}

	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return text, nil
}

func (e *evaluatorService) logTruncation(cvs []models.CV) {
	for _, cv := range cvs {
		if n := utf8.RuneCountInString(cv.Text); n > e.excerptLimit {
			e.log.Debug("CV text truncated for prompt",
				zap.String("filename", cv.Filename),
				zap.Int("characters", n),
				zap.Int("limit", e.excerptLimit),
			)
		}
	}
}

func isPDFType(fileType string) bool {
	switch strings.ToLower(strings.TrimSpace(fileType)) {
	case "pdf", ".pdf", "application/pdf":
		return true
	default:
		return false
	}
}
