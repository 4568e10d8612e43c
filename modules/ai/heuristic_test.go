package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/task-manager/domain/task"
)

// Sunday 2024-12-22, so "this weekend" resolves to the following Saturday.
var parseNow = time.Date(2024, 12, 22, 9, 30, 0, 0, time.UTC)

func TestParseHeuristic_DentistExample(t *testing.T) {
	fields := ParseHeuristic("Call dentist tomorrow at 3pm urgent", parseNow)

	assert.Equal(t, "Call dentist tomorrow at 3pm urgent", fields.Title)
	assert.Equal(t, "Call dentist tomorrow at 3pm urgent", fields.Description)
	assert.Equal(t, domain.PriorityHigh, fields.Priority)
	require.NotNil(t, fields.DueDate)
	assert.Equal(t, "2024-12-23", fields.DueDate.String())
}

func TestParseHeuristic_Dates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"today", "Finish the report today", "2024-12-22"},
		{"tonight", "Take out the trash tonight", "2024-12-22"},
		{"tomorrow", "Pick up the parcel tomorrow", "2024-12-23"},
		{"tmr", "Submit expenses tmr", "2024-12-23"},
		{"next week", "Plan the offsite next week", "2024-12-29"},
		{"this weekend", "Buy groceries this weekend", "2024-12-28"},
		{"in N days", "Renew the passport in 3 days", "2024-12-25"},
		{"unresolvable weekday defaults to tomorrow", "Review the draft next friday", "2024-12-23"},
		{"on month day defaults to tomorrow", "Pay rent on January 1", "2024-12-23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseHeuristic(tt.input, parseNow)
			require.NotNil(t, fields.DueDate)
			assert.Equal(t, tt.want, fields.DueDate.String())
		})
	}
}

func TestParseHeuristic_NoDatePhrase(t *testing.T) {
	fields := ParseHeuristic("Organize the bookshelf", parseNow)
	assert.Nil(t, fields.DueDate)
}

func TestParseHeuristic_Priority(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Priority
	}{
		{"Fix the leak asap", domain.PriorityHigh},
		{"Respond immediately to the audit", domain.PriorityHigh},
		{"This is high priority work", domain.PriorityHigh},
		{"Prepare the important slides", domain.PriorityMedium},
		{"Sort old photos, low priority", domain.PriorityLow},
		{"Clean the garage, not urgent", domain.PriorityLow},
		{"Water the plants", domain.PriorityNone},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHeuristic(tt.input, parseNow).Priority)
		})
	}
}

func TestParseHeuristic_PriorityFirstMatchWins(t *testing.T) {
	// "urgent" appears in the high pattern list, which is checked first,
	// even though "not urgent" also matches the low pattern.
	fields := ParseHeuristic("not urgent at all", parseNow)
	assert.Equal(t, domain.PriorityHigh, fields.Priority)
}

func TestParseHeuristic_Title(t *testing.T) {
	t.Run("first sentence", func(t *testing.T) {
		fields := ParseHeuristic("Book flights. Also check hotel prices!", parseNow)
		assert.Equal(t, "Book flights", fields.Title)
	})

	t.Run("long input truncated", func(t *testing.T) {
		input := strings.Repeat("very ", 20) + "long task with no sentence break"
		fields := ParseHeuristic(input, parseNow)
		assert.Len(t, []rune(fields.Title), 53)
		assert.True(t, strings.HasSuffix(fields.Title, "..."))
	})

	t.Run("description keeps full input", func(t *testing.T) {
		input := "Book flights. Also check hotel prices!"
		fields := ParseHeuristic(input, parseNow)
		assert.Equal(t, input, fields.Description)
	})
}
