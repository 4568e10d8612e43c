package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/task-manager/client/settings"
	"github.com/example/task-manager/client/view"
	"github.com/example/task-manager/domain/task"
)

// fakeServer is a minimal in-memory API for session tests.
type fakeServer struct {
	tasks []task.Task
	fail  bool // when set, every request returns 500
}

func (f *fakeServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.fail {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "Something went wrong!"})
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/tasks":
			json.NewEncoder(w).Encode(f.tasks)

		case r.Method == http.MethodPost && r.URL.Path == "/api/tasks":
			var draft TaskDraft
			json.NewDecoder(r.Body).Decode(&draft)
			created := task.Task{
				ID:        "task-new",
				Title:     draft.Title,
				DueDate:   draft.DueDate,
				Priority:  draft.Priority,
				CreatedAt: time.Now(),
			}
			f.tasks = append(f.tasks, created)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(created)

		case r.Method == http.MethodPut:
			id := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
			var update TaskUpdate
			json.NewDecoder(r.Body).Decode(&update)
			for i := range f.tasks {
				if f.tasks[i].ID == id {
					if update.Completed != nil {
						f.tasks[i].Completed = *update.Completed
					}
					if update.Title != nil {
						f.tasks[i].Title = *update.Title
					}
					json.NewEncoder(w).Encode(f.tasks[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Task not found or unauthorized"})

		case r.Method == http.MethodDelete:
			id := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
			for i := range f.tasks {
				if f.tasks[i].ID == id {
					f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
					json.NewEncoder(w).Encode(map[string]string{"message": "Task deleted successfully"})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Task not found or unauthorized"})

		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Route not found"})
		}
	})
}

func newTestSession(t *testing.T, fake *fakeServer) *Session {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL + "/api")
	c.SetToken("test-token")
	return NewSession(c, settings.Default())
}

func seedTasks() []task.Task {
	due := task.NewDate(2024, 12, 20)
	return []task.Task{
		{ID: "a", Title: "Pay rent", DueDate: &due, CreatedAt: time.Unix(100, 0)},
		{ID: "b", Title: "Water plants", Completed: true, CreatedAt: time.Unix(200, 0)},
		{ID: "c", Title: "Book flights", CreatedAt: time.Unix(300, 0)},
	}
}

func TestSessionRefreshAndVisible(t *testing.T) {
	sess := newTestSession(t, &fakeServer{tasks: seedTasks()})
	require.NoError(t, sess.Refresh(context.Background()))

	assert.Len(t, sess.Tasks(), 3)

	// Default sort is due date ascending with undated tasks last.
	visible := sess.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, "a", visible[0].ID)

	state := sess.State()
	state.Status = view.StatusActive
	sess.SetState(state)
	for _, v := range sess.Visible() {
		assert.False(t, v.Completed)
	}
}

func TestSessionCreate(t *testing.T) {
	sess := newTestSession(t, &fakeServer{})
	require.NoError(t, sess.Refresh(context.Background()))

	created, err := sess.Create(context.Background(), TaskDraft{Title: "New task"})
	require.NoError(t, err)
	assert.Equal(t, "task-new", created.ID)
	assert.Len(t, sess.Tasks(), 1)
}

func TestSessionToggleComplete(t *testing.T) {
	sess := newTestSession(t, &fakeServer{tasks: seedTasks()})
	require.NoError(t, sess.Refresh(context.Background()))

	updated, err := sess.ToggleComplete(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	// Cache reflects the server's copy.
	for _, cached := range sess.Tasks() {
		if cached.ID == "a" {
			assert.True(t, cached.Completed)
		}
	}

	_, err = sess.ToggleComplete(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSessionDelete(t *testing.T) {
	sess := newTestSession(t, &fakeServer{tasks: seedTasks()})
	require.NoError(t, sess.Refresh(context.Background()))

	require.NoError(t, sess.Delete(context.Background(), "b"))
	assert.Len(t, sess.Tasks(), 2)
	for _, cached := range sess.Tasks() {
		assert.NotEqual(t, "b", cached.ID)
	}
}

func TestSessionFailureLeavesCacheUntouched(t *testing.T) {
	fake := &fakeServer{tasks: seedTasks()}
	sess := newTestSession(t, fake)
	require.NoError(t, sess.Refresh(context.Background()))
	before := sess.Tasks()

	fake.fail = true

	_, err := sess.Create(context.Background(), TaskDraft{Title: "Doomed"})
	assert.Error(t, err)
	_, err = sess.ToggleComplete(context.Background(), "a")
	assert.Error(t, err)
	err = sess.Delete(context.Background(), "a")
	assert.Error(t, err)

	assert.Equal(t, before, sess.Tasks())
}

func TestSessionReorderIsLocal(t *testing.T) {
	fake := &fakeServer{tasks: seedTasks()}
	sess := newTestSession(t, fake)
	require.NoError(t, sess.Refresh(context.Background()))

	sess.Reorder("a", "c")

	got := sess.Tasks()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})

	// Server order is untouched; a refresh restores it.
	require.NoError(t, sess.Refresh(context.Background()))
	got = sess.Tasks()
	assert.Equal(t, "a", got[0].ID)
}
