package ai

import (
	domain "github.com/example/task-manager/domain/task"
)

// Parse sources.
const (
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
)

// TaskFields are task attributes extracted from natural language. They mirror
// the shape of a create-task request without committing anything to storage.
type TaskFields struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	DueDate     *domain.Date    `json:"due_date,omitempty"`
	Priority    domain.Priority `json:"priority,omitempty"`
}

// ParseOutcome carries extracted fields plus where they came from. Reason is
// the backend's own explanation of the parse and is empty on the heuristic
// path.
type ParseOutcome struct {
	Fields TaskFields `json:"fields"`
	Source string     `json:"source"`
	Reason string     `json:"reason,omitempty"`
}

// ParseTaskRequest represents a natural language parse request.
type ParseTaskRequest struct {
	Input string `json:"natural_language_input"`
}

// EnhanceTaskRequest represents a task enhancement request.
type EnhanceTaskRequest struct {
	Fields TaskFields `json:"fields"`
}

// SuggestionsRequest represents a request for task improvement suggestions.
type SuggestionsRequest struct {
	Fields TaskFields `json:"fields"`
}

// SuggestionsResponse represents the suggestions service response.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}
