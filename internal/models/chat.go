package models

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Question string `json:"question" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type UserRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
