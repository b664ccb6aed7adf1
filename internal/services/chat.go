package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/cv-assistant/internal/models"
	"alfredoptarigan/cv-assistant/internal/repositories"
)

type ChatService interface {
	Send(ctx context.Context, userID, question string) (string, error)
	History(userID string) []models.ChatMessage
	Clear(userID string)
}

type chatService struct {
	sessions     repositories.SessionRepository
	llm          TextCompleter
	historyLimit int
	log          *zap.Logger
}

func NewChatService(
	sessions repositories.SessionRepository,
	llm TextCompleter,
	historyLimit int,
	log *zap.Logger,
) ChatService {
	if historyLimit <= 0 {
		historyLimit = repositories.DefaultContextLimit
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &chatService{
		sessions:     sessions,
		llm:          llm,
		historyLimit: historyLimit,
		log:          log,
	}
}

// Send records the question, asks the LLM with the most recent turns as context
// and records the reply. A failed call leaves the question in the log.
func (s *chatService) Send(ctx context.Context, userID, question string) (string, error) {
	s.sessions.AppendMessage(userID, models.RoleUser, question)

	history := s.sessions.RecentContext(userID, s.historyLimit)
	s.log.Debug("sending chat turn",
		zap.String("user_id", userID),
		zap.Int("context_messages", len(history)),
	)

	reply, err := s.llm.CompleteChat(ctx, history)
	if err != nil {
		s.log.Error("chat completion failed", zap.String("user_id", userID), zap.Error(err))
		return "", fmt.Errorf("failed to get chat reply: %w", err)
	}

	s.sessions.AppendMessage(userID, models.RoleAssistant, reply)
	return reply, nil
}

func (s *chatService) History(userID string) []models.ChatMessage {
	return s.sessions.History(userID)
}

func (s *chatService) Clear(userID string) {
	s.sessions.Clear(userID)
	s.log.Info("chat history cleared", zap.String("user_id", userID))
}
