package ai

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	domain "github.com/example/task-manager/domain/task"
)

// Pattern-based extraction used when the AI backend is unavailable.
// Patterns are tried in order and the first match wins.

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)today|tonight`),
	regexp.MustCompile(`(?i)tomorrow|tmr`),
	regexp.MustCompile(`(?i)next (?:week|monday|tuesday|wednesday|thursday|friday|saturday|sunday)`),
	regexp.MustCompile(`(?i)this (?:weekend|saturday|sunday)`),
	regexp.MustCompile(`(?i)in \d+ days?`),
	regexp.MustCompile(`(?i)on \w+ \d+`),
	regexp.MustCompile(`(?i)by \w+ \d+`),
}

var priorityPatterns = []struct {
	re       *regexp.Regexp
	priority domain.Priority
}{
	{regexp.MustCompile(`(?i)urgent|asap|immediately|high priority`), domain.PriorityHigh},
	{regexp.MustCompile(`(?i)important|medium priority`), domain.PriorityMedium},
	{regexp.MustCompile(`(?i)low priority|not urgent`), domain.PriorityLow},
}

var (
	sentenceEnd = regexp.MustCompile(`[.!?]`)
	inDaysRe    = regexp.MustCompile(`(?i)in (\d+) days?`)
)

const maxHeuristicTitle = 50

// ParseHeuristic extracts task fields from free text without calling any
// external service. now anchors relative date phrases.
func ParseHeuristic(input string, now time.Time) TaskFields {
	fields := TaskFields{
		Title:       heuristicTitle(input),
		Description: input,
	}

	for _, re := range datePatterns {
		if phrase := re.FindString(input); phrase != "" {
			d := resolveDatePhrase(phrase, now)
			fields.DueDate = &d
			break
		}
	}

	for _, p := range priorityPatterns {
		if p.re.MatchString(input) {
			fields.Priority = p.priority
			break
		}
	}

	return fields
}

// heuristicTitle takes the first sentence, truncated to 50 characters.
func heuristicTitle(input string) string {
	title := strings.TrimSpace(sentenceEnd.Split(input, 2)[0])
	if title == "" {
		title = input
	}
	if runes := []rune(title); len(runes) > maxHeuristicTitle {
		title = string(runes[:maxHeuristicTitle]) + "..."
	}
	return title
}

// resolveDatePhrase turns a matched date phrase into a concrete date.
// Phrases the fixed rules cannot resolve default to tomorrow.
func resolveDatePhrase(phrase string, now time.Time) domain.Date {
	lower := strings.ToLower(phrase)

	switch {
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"):
		return domain.DateOf(now)
	case strings.Contains(lower, "tomorrow"), strings.Contains(lower, "tmr"):
		return domain.DateOf(now.AddDate(0, 0, 1))
	case strings.Contains(lower, "next week"):
		return domain.DateOf(now.AddDate(0, 0, 7))
	case strings.Contains(lower, "this weekend"):
		daysUntilSaturday := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
		return domain.DateOf(now.AddDate(0, 0, daysUntilSaturday))
	}

	if m := inDaysRe.FindStringSubmatch(lower); m != nil {
		days, err := strconv.Atoi(m[1])
		if err == nil {
			return domain.DateOf(now.AddDate(0, 0, days))
		}
	}

	return domain.DateOf(now.AddDate(0, 0, 1))
}
