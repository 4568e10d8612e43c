package ai

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// ErrEmptyInput is returned when a parse request carries no text.
var ErrEmptyInput = errors.New("input is required")

// AIService parses natural language into task fields. When an OpenAI key is
// configured it asks the model first and falls back to pattern matching on
// any failure; without a key it runs pattern matching only. Parsing itself
// never fails.
type AIService struct {
	client *OpenAIClient
	now    func() time.Time
}

// NewAIService creates an AIService. An empty apiKey disables the AI backend.
func NewAIService(apiKey string) *AIService {
	s := &AIService{now: time.Now}
	if apiKey != "" {
		s.client = NewOpenAIClient(apiKey)
	}
	return s
}

// AIEnabled reports whether the OpenAI backend is configured.
func (s *AIService) AIEnabled() bool {
	return s.client != nil
}

// Parse extracts task fields from free text.
func (s *AIService) Parse(ctx context.Context, input string) (ParseOutcome, error) {
	if strings.TrimSpace(input) == "" {
		return ParseOutcome{}, ErrEmptyInput
	}

	if s.client != nil {
		fields, reason, err := s.client.ParseTask(ctx, input)
		if err == nil {
			return ParseOutcome{Fields: fields, Source: SourceAI, Reason: reason}, nil
		}
		log.Printf("[ai] AI parse failed, falling back to patterns: %v", err)
	}

	return ParseOutcome{
		Fields: ParseHeuristic(input, s.now()),
		Source: SourceHeuristic,
	}, nil
}

// Enhance asks the AI backend to improve the given fields. The original
// fields come back unchanged when the backend is disabled or fails.
func (s *AIService) Enhance(ctx context.Context, fields TaskFields) TaskFields {
	if s.client == nil {
		return fields
	}

	enhanced, err := s.client.EnhanceTask(ctx, fields)
	if err != nil {
		log.Printf("[ai] enhancement failed: %v", err)
		return fields
	}
	return enhanced
}

// Suggestions returns improvement suggestions for the given fields, or an
// empty list when the backend is disabled or fails.
func (s *AIService) Suggestions(ctx context.Context, fields TaskFields) []string {
	if s.client == nil {
		return []string{}
	}

	suggestions, err := s.client.SuggestImprovements(ctx, fields)
	if err != nil {
		log.Printf("[ai] suggestions failed: %v", err)
		return []string{}
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	return suggestions
}
