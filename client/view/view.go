// Package view implements the client-side task view engine: pure filtering
// and ordering of the in-memory task collection according to the current
// view state. The engine never talks to the server and never mutates its
// input.
package view

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/task-manager/domain/task"
)

// Status filters tasks by completion state.
type Status string

// Status filter values.
const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// PriorityFilter restricts tasks to a priority level. The zero value applies
// no restriction; PriorityNone selects exactly the tasks with no priority
// set.
type PriorityFilter string

// Priority filter values.
const (
	PriorityAny  PriorityFilter = ""
	PriorityNone PriorityFilter = "none"
	PriorityLow  PriorityFilter = "low"
	PriorityMed  PriorityFilter = "medium"
	PriorityHigh PriorityFilter = "high"
)

// Bucket classifies tasks by how their due date relates to today. The zero
// value applies no restriction.
type Bucket string

// Due-date buckets.
const (
	BucketAny      Bucket = ""
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketThisWeek Bucket = "this-week"
	BucketOverdue  Bucket = "overdue"
	BucketNone     Bucket = "none"
)

// SortField selects the attribute tasks are ordered by.
type SortField string

// Sortable fields.
const (
	SortDueDate   SortField = "dueDate"
	SortPriority  SortField = "priority"
	SortCreatedAt SortField = "createdAt"
	SortTitle     SortField = "title"
)

// Direction is the sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort combines a sort field with a direction.
type Sort struct {
	Field     SortField `yaml:"field" json:"field"`
	Direction Direction `yaml:"direction" json:"direction"`
}

// State is the complete view configuration: which tasks are visible and in
// what order. It lives only on the client and is never sent to the server.
type State struct {
	Status   Status
	Priority PriorityFilter
	DueDate  Bucket
	Search   string
	Sort     Sort
}

// DefaultState returns the view applied before any user selection: every
// task, newest first. Saved preferences overlay this at session start, see
// settings.Default.
func DefaultState() State {
	return State{
		Status: StatusAll,
		Sort:   Sort{Field: SortCreatedAt, Direction: Desc},
	}
}

// ToggleSort selects a sort field. Selecting the field already active flips
// the direction; selecting a different field resets the direction to
// ascending.
func (s *State) ToggleSort(field SortField) {
	if s.Sort.Field == field {
		if s.Sort.Direction == Asc {
			s.Sort.Direction = Desc
		} else {
			s.Sort.Direction = Asc
		}
		return
	}
	s.Sort = Sort{Field: field, Direction: Asc}
}

// Apply returns the tasks that satisfy every active filter in s, ordered per
// s.Sort. The input slice is not modified. The current instant is taken as
// an argument so that "today" is captured exactly once per invocation.
func Apply(tasks []task.Task, s State, now time.Time) []task.Task {
	today := task.DateOf(now)

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, s, today) {
			out = append(out, t)
		}
	}

	sortTasks(out, s.Sort)
	return out
}

// matches evaluates the AND of all active filters against a single task.
func matches(t task.Task, s State, today task.Date) bool {
	switch s.Status {
	case StatusActive:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}

	if s.Priority != PriorityAny {
		if s.Priority == PriorityNone {
			if t.Priority != task.PriorityNone {
				return false
			}
		} else if t.Priority != task.Priority(s.Priority) {
			return false
		}
	}

	if s.DueDate != BucketAny && !inBucket(t, s.DueDate, today) {
		return false
	}

	if s.Search != "" {
		q := strings.ToLower(s.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}

	return true
}

// inBucket reports whether t falls in the given due-date bucket relative to
// today. Tasks without a due date belong only to BucketNone.
func inBucket(t task.Task, b Bucket, today task.Date) bool {
	if !t.HasDueDate() {
		return b == BucketNone
	}

	due := *t.DueDate
	switch b {
	case BucketToday:
		return due.Equal(today.Time)
	case BucketTomorrow:
		return due.Equal(today.AddDate(0, 0, 1))
	case BucketThisWeek:
		return !due.Before(today.Time) && !due.After(today.AddDate(0, 0, 7))
	case BucketOverdue:
		return due.Before(today.Time) && !t.Completed
	case BucketNone:
		return false
	}
	return true
}

// sortTasks orders tasks in place per the selected sort. The sort is stable:
// tasks comparing equal keep their pre-sort relative order.
func sortTasks(tasks []task.Task, s Sort) {
	mult := 1
	if s.Direction == Desc {
		mult = -1
	}

	var cmp func(a, b task.Task) int
	switch s.Field {
	case SortDueDate:
		cmp = compareDueDate
	case SortPriority:
		cmp = func(a, b task.Task) int { return a.Priority.Weight() - b.Priority.Weight() }
	case SortCreatedAt:
		cmp = func(a, b task.Task) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortTitle:
		col := collate.New(language.English)
		cmp = func(a, b task.Task) int { return col.CompareString(a.Title, b.Title) }
	default:
		return
	}

	if s.Field == SortDueDate {
		// Tasks without a due date stay last in both directions; only the
		// order among dated tasks reverses.
		slices.SortStableFunc(tasks, func(a, b task.Task) int {
			switch {
			case !a.HasDueDate() && !b.HasDueDate():
				return 0
			case !a.HasDueDate():
				return 1
			case !b.HasDueDate():
				return -1
			}
			return mult * cmp(a, b)
		})
		return
	}

	slices.SortStableFunc(tasks, func(a, b task.Task) int {
		return mult * cmp(a, b)
	})
}

func compareDueDate(a, b task.Task) int {
	return a.DueDate.Compare(b.DueDate.Time)
}
