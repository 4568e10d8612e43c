package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AIModule provides natural language task parsing services.
type AIModule struct {
	service *AIService
}

// Compile-time interface checks.
var _ mono.Module = (*AIModule)(nil)
var _ mono.ServiceProviderModule = (*AIModule)(nil)
var _ mono.HealthCheckableModule = (*AIModule)(nil)

// NewModule creates a new AIModule.
func NewModule() *AIModule {
	return &AIModule{}
}

// Name returns the module name.
func (m *AIModule) Name() string {
	return "ai"
}

// Start initializes the AI module. A missing OPENAI_API_KEY is not an
// error; parsing then runs on patterns alone.
func (m *AIModule) Start(_ context.Context) error {
	m.service = NewAIService(os.Getenv("OPENAI_API_KEY"))

	if m.service.AIEnabled() {
		log.Println("[ai] Module started (OpenAI backend enabled)")
	} else {
		log.Println("[ai] Module started (pattern matching only, no OPENAI_API_KEY)")
	}
	return nil
}

// Stop shuts down the module.
func (m *AIModule) Stop(_ context.Context) error {
	log.Println("[ai] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AIModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}

	mode := "pattern matching only"
	if m.service.AIEnabled() {
		mode = "OpenAI backend enabled"
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: mode,
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AIModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name string
		err  error
	}{
		{"parse", helper.RegisterTypedRequestReplyService(container, "parse", json.Unmarshal, json.Marshal, m.handleParse)},
		{"enhance", helper.RegisterTypedRequestReplyService(container, "enhance", json.Unmarshal, json.Marshal, m.handleEnhance)},
		{"suggest", helper.RegisterTypedRequestReplyService(container, "suggest", json.Unmarshal, json.Marshal, m.handleSuggest)},
	}

	for _, s := range services {
		if s.err != nil {
			return fmt.Errorf("failed to register %s service: %w", s.name, s.err)
		}
	}

	log.Printf("[ai] Registered services: parse, enhance, suggest")
	return nil
}

// handleParse handles natural language parse requests.
func (m *AIModule) handleParse(ctx context.Context, req ParseTaskRequest, _ *mono.Msg) (ParseOutcome, error) {
	return m.service.Parse(ctx, req.Input)
}

// handleEnhance handles task enhancement requests.
func (m *AIModule) handleEnhance(ctx context.Context, req EnhanceTaskRequest, _ *mono.Msg) (TaskFields, error) {
	if req.Fields.Title == "" {
		return TaskFields{}, fmt.Errorf("title is required")
	}
	return m.service.Enhance(ctx, req.Fields), nil
}

// handleSuggest handles suggestion requests.
func (m *AIModule) handleSuggest(ctx context.Context, req SuggestionsRequest, _ *mono.Msg) (SuggestionsResponse, error) {
	if req.Fields.Title == "" {
		return SuggestionsResponse{}, fmt.Errorf("title is required")
	}
	return SuggestionsResponse{Suggestions: m.service.Suggestions(ctx, req.Fields)}, nil
}
