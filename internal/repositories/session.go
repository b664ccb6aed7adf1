package repositories

import (
	"sync"

	"alfredoptarigan/cv-assistant/internal/models"
)

const DefaultContextLimit = 10

// SessionRepository holds per-user chat logs and uploaded CVs in process memory.
// An unknown user ID reads as an empty session; no method returns an error.
type SessionRepository interface {
	AppendMessage(userID string, role models.Role, text string)
	RecentContext(userID string, limit int) []models.ChatMessage
	History(userID string) []models.ChatMessage
	Clear(userID string)
	AddCV(userID, filename, text string)
	CVsFor(userID string) []models.CV
	ClearCVs(userID string)
}

type session struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	cvs      []models.CV
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*session),
	}
}

// lookup returns the session for userID or nil. It never creates one.
func (r *sessionRepository) lookup(userID string) *session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[userID]
}

func (r *sessionRepository) getOrCreate(userID string) *session {
	if s := r.lookup(userID); s != nil {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[userID]; ok {
		return s
	}
	s := &session{}
	r.sessions[userID] = s
	return s
}

// AppendMessage implements SessionRepository.
func (r *sessionRepository) AppendMessage(userID string, role models.Role, text string) {
	s := r.getOrCreate(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, models.ChatMessage{Role: role, Content: text})
}

// RecentContext implements SessionRepository.
func (r *sessionRepository) RecentContext(userID string, limit int) []models.ChatMessage {
	if limit <= 0 {
		limit = DefaultContextLimit
	}

	s := r.lookup(userID)
	if s == nil {
		return []models.ChatMessage{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if len(s.messages) > limit {
		start = len(s.messages) - limit
	}
	return append([]models.ChatMessage{}, s.messages[start:]...)
}

// History implements SessionRepository.
func (r *sessionRepository) History(userID string) []models.ChatMessage {
	s := r.lookup(userID)
	if s == nil {
		return []models.ChatMessage{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage{}, s.messages...)
}

// Clear implements SessionRepository. Uploaded CVs are kept.
func (r *sessionRepository) Clear(userID string) {
	s := r.lookup(userID)
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// AddCV implements SessionRepository.
func (r *sessionRepository) AddCV(userID, filename, text string) {
	s := r.getOrCreate(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cvs = append(s.cvs, models.CV{Filename: filename, Text: text})
}

// CVsFor implements SessionRepository.
func (r *sessionRepository) CVsFor(userID string) []models.CV {
	s := r.lookup(userID)
	if s == nil {
		return []models.CV{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CV{}, s.cvs...)
}

// ClearCVs implements SessionRepository. The chat log is kept.
func (r *sessionRepository) ClearCVs(userID string) {
	s := r.lookup(userID)
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cvs = nil
}
