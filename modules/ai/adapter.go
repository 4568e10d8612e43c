package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AIPort defines the interface other modules use for natural language
// parsing.
type AIPort interface {
	Parse(ctx context.Context, input string) (*ParseOutcome, error)
	Enhance(ctx context.Context, fields TaskFields) (*TaskFields, error)
	Suggestions(ctx context.Context, fields TaskFields) ([]string, error)
}

// AIAdapter implements AIPort using the service container.
type AIAdapter struct {
	container mono.ServiceContainer
}

// NewAIAdapter creates a new AIAdapter.
func NewAIAdapter(container mono.ServiceContainer) *AIAdapter {
	return &AIAdapter{
		container: container,
	}
}

// Parse extracts task fields from free text through the ai service.
func (a *AIAdapter) Parse(ctx context.Context, input string) (*ParseOutcome, error) {
	req := ParseTaskRequest{Input: input}
	var resp ParseOutcome
	if err := a.call(ctx, "parse", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Enhance improves the given task fields through the ai service.
func (a *AIAdapter) Enhance(ctx context.Context, fields TaskFields) (*TaskFields, error) {
	req := EnhanceTaskRequest{Fields: fields}
	var resp TaskFields
	if err := a.call(ctx, "enhance", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Suggestions fetches improvement suggestions through the ai service.
func (a *AIAdapter) Suggestions(ctx context.Context, fields TaskFields) ([]string, error) {
	req := SuggestionsRequest{Fields: fields}
	var resp SuggestionsResponse
	if err := a.call(ctx, "suggest", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

func (a *AIAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, err)
	}
	return nil
}
