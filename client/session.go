package client

import (
	"context"
	"slices"
	"time"

	"github.com/example/task-manager/client/settings"
	"github.com/example/task-manager/client/view"
	"github.com/example/task-manager/domain/task"
)

// Session holds the client-side task collection and the current view state.
// Every mutation is sent to the server first; the local collection changes
// only after the server confirms, so a failed call leaves the session
// exactly as it was.
type Session struct {
	client *Client
	tasks  []task.Task
	state  view.State
	now    func() time.Time
}

// NewSession creates a session with the view defaults from the given
// settings. The task collection starts empty until Refresh.
func NewSession(c *Client, s settings.Settings) *Session {
	return &Session{
		client: c,
		state:  s.ViewState(),
		now:    time.Now,
	}
}

// Refresh replaces the local collection with the server's.
func (s *Session) Refresh(ctx context.Context) error {
	tasks, err := s.client.ListTasks(ctx)
	if err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

// Tasks returns a copy of the full local collection in its current order.
func (s *Session) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Visible returns the tasks that pass the current filters, in the current
// sort order.
func (s *Session) Visible() []task.Task {
	return view.Apply(s.tasks, s.state, s.now())
}

// State returns the current view state.
func (s *Session) State() view.State {
	return s.state
}

// SetState replaces the view state. This only changes what Visible returns.
func (s *Session) SetState(state view.State) {
	s.state = state
}

// ToggleSort selects a sort field, flipping the direction when the field is
// already active.
func (s *Session) ToggleSort(field view.SortField) {
	s.state.ToggleSort(field)
}

// Create sends a new task to the server and appends it locally on success.
func (s *Session) Create(ctx context.Context, draft TaskDraft) (*task.Task, error) {
	created, err := s.client.CreateTask(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.tasks = append(s.tasks, *created)
	return created, nil
}

// CreateFromText parses free text server-side, creates the task, and appends
// it locally on success.
func (s *Session) CreateFromText(ctx context.Context, input string) (*task.Task, error) {
	created, err := s.client.CreateTaskFromText(ctx, input)
	if err != nil {
		return nil, err
	}
	s.tasks = append(s.tasks, *created)
	return created, nil
}

// Update sends a partial update and replaces the local copy with the
// server's result on success.
func (s *Session) Update(ctx context.Context, id string, update TaskUpdate) (*task.Task, error) {
	updated, err := s.client.UpdateTask(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.replace(*updated)
	return updated, nil
}

// ToggleComplete flips the completion flag of a local task through the
// server.
func (s *Session) ToggleComplete(ctx context.Context, id string) (*task.Task, error) {
	i := slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
	if i < 0 {
		return nil, &APIError{Status: 404, Message: "Task not found or unauthorized"}
	}

	completed := !s.tasks[i].Completed
	return s.Update(ctx, id, TaskUpdate{Completed: &completed})
}

// Delete removes a task on the server and drops it locally on success.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.tasks = slices.DeleteFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
	return nil
}

// Reorder moves a task next to another in the local collection. The order is
// client-local and is not persisted.
func (s *Session) Reorder(fromID, toID string) {
	s.tasks = view.Move(s.tasks, fromID, toID)
}

func (s *Session) replace(updated task.Task) {
	for i, t := range s.tasks {
		if t.ID == updated.ID {
			s.tasks[i] = updated
			return
		}
	}
}
