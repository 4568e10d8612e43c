package api

import (
	domain "github.com/example/task-manager/domain/task"
)

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned by register and login with the issued token.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *domain.Date    `json:"due_date"`
	Priority    domain.Priority `json:"priority"`
}

// UpdateTaskRequest represents a partial task update. Absent fields are left
// untouched.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	DueDate     *domain.Date     `json:"due_date"`
	Priority    *domain.Priority `json:"priority"`
	Completed   *bool            `json:"completed"`
}

// ParseTaskRequest carries free text for natural language parsing.
type ParseTaskRequest struct {
	Input string `json:"natural_language_input"`
}

// TaskFieldsRequest carries task fields for enhancement and suggestions.
type TaskFieldsRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     *domain.Date    `json:"due_date"`
	Priority    domain.Priority `json:"priority"`
}

// SuggestionsResponse represents AI improvement suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}
