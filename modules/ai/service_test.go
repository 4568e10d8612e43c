package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/task-manager/domain/task"
)

// fakeOpenAI returns a test server that answers every chat completion with
// the given JSON content, and a service wired to it.
func fakeOpenAI(t *testing.T, handler http.HandlerFunc) *AIService {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &AIService{
		client: &OpenAIClient{
			apiKey:  "test-key",
			baseURL: srv.URL,
			model:   openaiModel,
			client:  srv.Client(),
		},
		now: func() time.Time { return parseNow },
	}
}

func chatContent(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, openaiModel, req.Model)
		require.Len(t, req.Messages, 2)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}
}

func TestServiceParse_AIPath(t *testing.T) {
	svc := fakeOpenAI(t, chatContent(t, `{
		"title": "Call dentist",
		"description": "Call dentist tomorrow at 3pm urgent",
		"due_date": "2024-12-23",
		"priority": "high",
		"confidence": 0.95,
		"reasoning": "Extracted 'tomorrow' as date, 'urgent' as high priority"
	}`))

	outcome, err := svc.Parse(context.Background(), "Call dentist tomorrow at 3pm urgent")
	require.NoError(t, err)

	assert.Equal(t, SourceAI, outcome.Source)
	assert.Equal(t, "Call dentist", outcome.Fields.Title)
	assert.Equal(t, domain.PriorityHigh, outcome.Fields.Priority)
	require.NotNil(t, outcome.Fields.DueDate)
	assert.Equal(t, "2024-12-23", outcome.Fields.DueDate.String())
	assert.NotEmpty(t, outcome.Reason)
}

func TestServiceParse_InvalidAIFieldsDropped(t *testing.T) {
	svc := fakeOpenAI(t, chatContent(t, `{
		"title": "Do the thing",
		"description": "Do the thing",
		"due_date": "sometime soon",
		"priority": "critical"
	}`))

	outcome, err := svc.Parse(context.Background(), "Do the thing")
	require.NoError(t, err)

	assert.Equal(t, SourceAI, outcome.Source)
	assert.Nil(t, outcome.Fields.DueDate)
	assert.Equal(t, domain.PriorityNone, outcome.Fields.Priority)
}

func TestServiceParse_FallsBackOnServerError(t *testing.T) {
	svc := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "overloaded"},
		})
	})

	outcome, err := svc.Parse(context.Background(), "Call dentist tomorrow urgent")
	require.NoError(t, err)

	assert.Equal(t, SourceHeuristic, outcome.Source)
	assert.Equal(t, domain.PriorityHigh, outcome.Fields.Priority)
	require.NotNil(t, outcome.Fields.DueDate)
	assert.Equal(t, "2024-12-23", outcome.Fields.DueDate.String())
}

func TestServiceParse_FallsBackOnBadJSON(t *testing.T) {
	svc := fakeOpenAI(t, chatContent(t, `not json at all`))

	outcome, err := svc.Parse(context.Background(), "Buy groceries this weekend")
	require.NoError(t, err)
	assert.Equal(t, SourceHeuristic, outcome.Source)
}

func TestServiceParse_NoAPIKeyUsesHeuristic(t *testing.T) {
	svc := NewAIService("")
	assert.False(t, svc.AIEnabled())

	outcome, err := svc.Parse(context.Background(), "Submit the report tomorrow, important")
	require.NoError(t, err)

	assert.Equal(t, SourceHeuristic, outcome.Source)
	assert.Equal(t, domain.PriorityMedium, outcome.Fields.Priority)
	require.NotNil(t, outcome.Fields.DueDate)
}

func TestServiceParse_EmptyInput(t *testing.T) {
	svc := NewAIService("")

	_, err := svc.Parse(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestServiceEnhance(t *testing.T) {
	original := TaskFields{Title: "Plan trip", Description: "Plan trip"}

	t.Run("merges returned fields", func(t *testing.T) {
		svc := fakeOpenAI(t, chatContent(t, `{
			"title": "Plan summer trip to Lisbon",
			"description": "Book flights and hotel for the Lisbon trip",
			"due_date": "2025-01-15",
			"priority": "medium",
			"enhancements": ["added destination", "suggested deadline"]
		}`))

		enhanced := svc.Enhance(context.Background(), original)
		assert.Equal(t, "Plan summer trip to Lisbon", enhanced.Title)
		assert.Equal(t, domain.PriorityMedium, enhanced.Priority)
		require.NotNil(t, enhanced.DueDate)
	})

	t.Run("keeps original on failure", func(t *testing.T) {
		svc := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		assert.Equal(t, original, svc.Enhance(context.Background(), original))
	})

	t.Run("keeps original without api key", func(t *testing.T) {
		svc := NewAIService("")
		assert.Equal(t, original, svc.Enhance(context.Background(), original))
	})
}

func TestServiceSuggestions(t *testing.T) {
	fields := TaskFields{Title: "Write blog post"}

	t.Run("returns list", func(t *testing.T) {
		svc := fakeOpenAI(t, chatContent(t, `{
			"suggestions": ["pick a topic first", "set a word count target"]
		}`))

		got := svc.Suggestions(context.Background(), fields)
		assert.Equal(t, []string{"pick a topic first", "set a word count target"}, got)
	})

	t.Run("empty on failure", func(t *testing.T) {
		svc := fakeOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		got := svc.Suggestions(context.Background(), fields)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("empty without api key", func(t *testing.T) {
		svc := NewAIService("")
		got := svc.Suggestions(context.Background(), fields)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
