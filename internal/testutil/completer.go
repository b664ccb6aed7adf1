package testutil

import (
	"context"
	"sync"

	"alfredoptarigan/cv-assistant/internal/models"
)

// FakeCompleter records every call and answers with Reply or Err.
type FakeCompleter struct {
	mu      sync.Mutex
	Reply   string
	Err     error
	Chats   [][]models.ChatMessage
	Prompts []string
}

func (f *FakeCompleter) CompleteChat(_ context.Context, messages []models.ChatMessage) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Chats = append(f.Chats, append([]models.ChatMessage{}, messages...))
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

func (f *FakeCompleter) CompletePrompt(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}
