package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/example/task-manager/domain/task"
)

const (
	openaiBaseURL = "https://api.openai.com/v1/chat/completions"
	openaiModel   = "gpt-3.5-turbo"

	parseMaxTokens = 500

	parseTemperature   = 0.3
	enhanceTemperature = 0.4
	suggestTemperature = 0.5
)

const parseSystemPrompt = `You are an intelligent task parser. Parse the user's natural language input and extract task information.

Return a JSON object with the following structure:
{
  "title": "A concise, clear task title (max 100 characters)",
  "description": "Detailed description or the original input if no specific description",
  "due_date": "ISO date string (YYYY-MM-DD) or null if no date mentioned",
  "priority": "low, medium, high, or null based on urgency indicators",
  "confidence": "number between 0-1 indicating confidence in the parsing",
  "reasoning": "brief explanation of how you parsed the input"
}

Guidelines:
- Extract dates from phrases like "tomorrow", "next week", "by Friday", "in 3 days"
- Identify priority from words like "urgent", "asap", "important", "low priority"
- If no specific date is mentioned, set due_date to null
- If no priority indicators, set priority to null
- Be conservative with date parsing - only extract clear date references
- Consider context and common task patterns

Example inputs and outputs:
Input: "Call dentist tomorrow at 3pm urgent"
Output: {"title": "Call dentist", "description": "Call dentist tomorrow at 3pm urgent", "due_date": "2024-12-21", "priority": "high", "confidence": 0.95, "reasoning": "Extracted 'tomorrow' as date, 'urgent' as high priority"}

Input: "Buy groceries this weekend"
Output: {"title": "Buy groceries", "description": "Buy groceries this weekend", "due_date": "2024-12-21", "priority": null, "confidence": 0.9, "reasoning": "Extracted 'this weekend' as date, no priority indicators"}`

const enhanceSystemPrompt = `You are a task enhancement AI. Given a basic task, suggest improvements to make it more actionable and complete.

Consider:
- Adding missing context or details
- Suggesting appropriate priority if none set
- Recommending due dates if none specified
- Making titles more specific and actionable

Return a JSON object with enhanced task data:
{
  "title": "Enhanced title",
  "description": "Enhanced description",
  "due_date": "Suggested due date or existing one",
  "priority": "Suggested priority or existing one",
  "enhancements": ["list of improvements made"]
}`

const suggestSystemPrompt = `Analyze this task and suggest 2-3 specific improvements to make it more actionable and effective.

Focus on:
- Specificity and clarity
- Missing information
- Better prioritization
- Time management
- Actionability

Return a JSON object of improvement suggestions:
{"suggestions": ["suggestion 1", "suggestion 2", "suggestion 3"]}`

// OpenAIClient calls the OpenAI chat completions API.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type openaiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

type aiParseResult struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	Priority    string  `json:"priority"`
	Confidence  float64 `json:"confidence"`
	Reasoning   string  `json:"reasoning"`
}

type aiEnhanceResult struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	DueDate      string   `json:"due_date"`
	Priority     string   `json:"priority"`
	Enhancements []string `json:"enhancements"`
}

type aiSuggestResult struct {
	Suggestions []string `json:"suggestions"`
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: openaiBaseURL,
		model:   openaiModel,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ParseTask extracts task fields from free text. The second return value is
// the model's stated reasoning.
func (c *OpenAIClient) ParseTask(ctx context.Context, input string) (TaskFields, string, error) {
	content, err := c.complete(ctx, parseSystemPrompt, input, parseTemperature, parseMaxTokens)
	if err != nil {
		return TaskFields{}, "", err
	}

	var result aiParseResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return TaskFields{}, "", fmt.Errorf("failed to decode parse result: %w", err)
	}
	if result.Title == "" {
		return TaskFields{}, "", fmt.Errorf("parse result has no title")
	}

	fields := TaskFields{
		Title:       result.Title,
		Description: result.Description,
	}
	// Unusable dates and priorities are dropped rather than rejected.
	if d, err := time.Parse(time.DateOnly, result.DueDate); err == nil {
		due := domain.DateOf(d)
		fields.DueDate = &due
	}
	if p := domain.Priority(result.Priority); p != domain.PriorityNone && p.Valid() {
		fields.Priority = p
	}

	return fields, result.Reasoning, nil
}

// EnhanceTask asks the model to improve the given fields. Fields the model
// leaves empty keep their original values.
func (c *OpenAIClient) EnhanceTask(ctx context.Context, fields TaskFields) (TaskFields, error) {
	content, err := c.complete(ctx, enhanceSystemPrompt, describeFields(fields), enhanceTemperature, 0)
	if err != nil {
		return TaskFields{}, err
	}

	var result aiEnhanceResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return TaskFields{}, fmt.Errorf("failed to decode enhance result: %w", err)
	}

	enhanced := fields
	if result.Title != "" {
		enhanced.Title = result.Title
	}
	if result.Description != "" {
		enhanced.Description = result.Description
	}
	if d, err := time.Parse(time.DateOnly, result.DueDate); err == nil {
		due := domain.DateOf(d)
		enhanced.DueDate = &due
	}
	if p := domain.Priority(result.Priority); p != domain.PriorityNone && p.Valid() {
		enhanced.Priority = p
	}

	return enhanced, nil
}

// SuggestImprovements returns short improvement suggestions for the task.
func (c *OpenAIClient) SuggestImprovements(ctx context.Context, fields TaskFields) ([]string, error) {
	content, err := c.complete(ctx, suggestSystemPrompt, describeFields(fields), suggestTemperature, 0)
	if err != nil {
		return nil, err
	}

	var result aiSuggestResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}

	return result.Suggestions, nil
}

// describeFields renders task fields as the plain-text block the enhancement
// and suggestion prompts expect.
func describeFields(fields TaskFields) string {
	description := fields.Description
	if description == "" {
		description = "No description"
	}
	dueDate := "No due date"
	if fields.DueDate != nil && !fields.DueDate.IsZero() {
		dueDate = fields.DueDate.String()
	}
	priority := string(fields.Priority)
	if priority == "" {
		priority = "No priority"
	}

	return fmt.Sprintf("Task: %s\nDescription: %s\nDue Date: %s\nPriority: %s",
		fields.Title, description, dueDate, priority)
}

func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, userContent string, temperature float64, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr openaiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("OpenAI API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("OpenAI API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}
