package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"alfredoptarigan/cv-assistant/internal/config"
	"alfredoptarigan/cv-assistant/internal/logger"
	"alfredoptarigan/cv-assistant/internal/models"
)

const previewLength = 200

// TextCompleter is the LLM capability the chat and evaluation services need.
type TextCompleter interface {
	CompleteChat(ctx context.Context, messages []models.ChatMessage) (string, error)
	CompletePrompt(ctx context.Context, prompt string) (string, error)
}

// contentGenerator is satisfied by *genai.Models.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiService struct {
	generator   contentGenerator
	modelName   string
	timeout     time.Duration
	temperature float32
	log         *zap.Logger
}

func NewGeminiService(cfg config.GeminiConfig, log *zap.Logger) (TextCompleter, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrMissingAPIKey
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiService(client.Models, cfg, log), nil
}

func newGeminiService(generator contentGenerator, cfg config.GeminiConfig, log *zap.Logger) *geminiService {
	if log == nil {
		log = zap.NewNop()
	}

	return &geminiService{
		generator:   generator,
		modelName:   cfg.Model,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
		log:         log,
	}
}

// CompleteChat implements TextCompleter.
func (g *geminiService) CompleteChat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		contents = append(contents, toContent(msg))
	}

	return g.generate(ctx, contents)
}

// CompletePrompt implements TextCompleter.
func (g *geminiService) CompletePrompt(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, genai.Text(prompt))
}

func toContent(msg models.ChatMessage) *genai.Content {
	role := genai.RoleUser
	if msg.Role == models.RoleAssistant {
		role = genai.RoleModel
	}

	return &genai.Content{
		Role:  string(role),
		Parts: []*genai.Part{{Text: msg.Content}},
	}
}

func (g *geminiService) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	g.log.Debug("gemini generate content request",
		zap.String("model", g.modelName),
		zap.Int("turns", len(contents)),
	)

	started := time.Now()
	resp, err := g.generator.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		g.log.Warn("gemini generate content failed",
			zap.String("model", g.modelName),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
		return "", upstreamError(ctx, err, g.timeout)
	}

	if resp == nil {
		return "", &UpstreamError{Detail: "no response generated (nil response)"}
	}

	text := resp.Text()
	if text == "" {
		return "", &UpstreamError{Detail: "no text content in response"}
	}

	g.log.Debug("gemini generate content response",
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("response_length", len(text)),
		zap.String("response_preview", logger.TruncateForLog(text, previewLength)),
	)

	return text, nil
}

func upstreamError(ctx context.Context, err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &UpstreamError{Detail: fmt.Sprintf("request timed out after %s", timeout), Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return &UpstreamError{Detail: apiErr.Message, Err: err}
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Message != "" {
		return &UpstreamError{Detail: apiErrPtr.Message, Err: err}
	}

	return &UpstreamError{Detail: err.Error(), Err: err}
}
