package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	taskdomain "github.com/example/task-manager/domain/task"
	userdomain "github.com/example/task-manager/domain/user"
	"github.com/example/task-manager/modules/ai"
	"github.com/example/task-manager/modules/tasks"
	"github.com/gofiber/fiber/v2"
)

// mockTasksPort implements tasks.TasksPort for testing
type mockTasksPort struct {
	createFunc func(ctx context.Context, req tasks.CreateTaskRequest) (*taskdomain.Task, error)
	listFunc   func(ctx context.Context, userID string) ([]taskdomain.Task, error)
	getFunc    func(ctx context.Context, userID, taskID string) (*taskdomain.Task, error)
	updateFunc func(ctx context.Context, req tasks.UpdateTaskRequest) (*taskdomain.Task, error)
	deleteFunc func(ctx context.Context, userID, taskID string) error
}

func (m *mockTasksPort) Create(ctx context.Context, req tasks.CreateTaskRequest) (*taskdomain.Task, error) {
	return m.createFunc(ctx, req)
}

func (m *mockTasksPort) List(ctx context.Context, userID string) ([]taskdomain.Task, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockTasksPort) Get(ctx context.Context, userID, taskID string) (*taskdomain.Task, error) {
	return m.getFunc(ctx, userID, taskID)
}

func (m *mockTasksPort) Update(ctx context.Context, req tasks.UpdateTaskRequest) (*taskdomain.Task, error) {
	return m.updateFunc(ctx, req)
}

func (m *mockTasksPort) Delete(ctx context.Context, userID, taskID string) error {
	return m.deleteFunc(ctx, userID, taskID)
}

// mockAIPort implements ai.AIPort for testing
type mockAIPort struct {
	parseFunc func(ctx context.Context, input string) (*ai.ParseOutcome, error)
}

func (m *mockAIPort) Parse(ctx context.Context, input string) (*ai.ParseOutcome, error) {
	return m.parseFunc(ctx, input)
}

func (m *mockAIPort) Enhance(ctx context.Context, fields ai.TaskFields) (*ai.TaskFields, error) {
	return &fields, nil
}

func (m *mockAIPort) Suggestions(ctx context.Context, fields ai.TaskFields) ([]string, error) {
	return []string{}, nil
}

// testApp wires the task routes behind an always-authenticated middleware.
func testApp(tasksPort tasks.TasksPort, aiPort ai.AIPort) *fiber.App {
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(UserContextKey, &userdomain.Claims{
			UserID: "user-123",
			Email:  "owner@example.com",
		})
		return c.Next()
	})

	h := NewHandlers(nil, nil, tasksPort, aiPort)
	app.Get("/api/tasks", h.ListTasks)
	app.Post("/api/tasks", h.CreateTask)
	app.Post("/api/tasks/ai", h.CreateTaskFromText)
	app.Get("/api/tasks/:id", h.GetTask)
	app.Put("/api/tasks/:id", h.UpdateTask)
	app.Delete("/api/tasks/:id", h.DeleteTask)
	app.Post("/api/ai-tasks/create", h.ParseTask)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	return resp, string(respBody)
}

func TestCreateTask(t *testing.T) {
	t.Run("created with owner from token", func(t *testing.T) {
		var gotReq tasks.CreateTaskRequest
		app := testApp(&mockTasksPort{
			createFunc: func(ctx context.Context, req tasks.CreateTaskRequest) (*taskdomain.Task, error) {
				gotReq = req
				return &taskdomain.Task{ID: "task-1", UserID: req.UserID, Title: req.Title}, nil
			},
		}, &mockAIPort{})

		resp, body := doJSON(t, app, "POST", "/api/tasks",
			`{"title":"Water the plants","priority":"low","due_date":"2025-01-10"}`)

		if resp.StatusCode != http.StatusCreated {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusCreated)
		}
		if gotReq.UserID != "user-123" {
			t.Errorf("owner = %q, want token subject", gotReq.UserID)
		}
		if gotReq.DueDate == nil || gotReq.DueDate.String() != "2025-01-10" {
			t.Errorf("due date not passed through: %+v", gotReq.DueDate)
		}
		if !strings.Contains(body, `"task-1"`) {
			t.Errorf("body = %v, missing created task", body)
		}
		if strings.Contains(body, "user-123") {
			t.Errorf("body = %v, owner id must not be serialized", body)
		}
	})

	t.Run("empty title maps to 400", func(t *testing.T) {
		app := testApp(&mockTasksPort{
			createFunc: func(ctx context.Context, req tasks.CreateTaskRequest) (*taskdomain.Task, error) {
				return nil, tasks.ErrEmptyTitle
			},
		}, &mockAIPort{})

		resp, body := doJSON(t, app, "POST", "/api/tasks", `{"title":""}`)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusBadRequest)
		}
		if !strings.Contains(body, "Title is required") {
			t.Errorf("body = %v", body)
		}
	})
}

func TestGetTask_NotFound(t *testing.T) {
	app := testApp(&mockTasksPort{
		getFunc: func(ctx context.Context, userID, taskID string) (*taskdomain.Task, error) {
			return nil, tasks.ErrNotFound
		},
	}, &mockAIPort{})

	resp, body := doJSON(t, app, "GET", "/api/tasks/someone-elses", "")

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusNotFound)
	}
	if !strings.Contains(body, "Task not found or unauthorized") {
		t.Errorf("body = %v", body)
	}
}

func TestUpdateTask_PartialBody(t *testing.T) {
	var gotReq tasks.UpdateTaskRequest
	app := testApp(&mockTasksPort{
		updateFunc: func(ctx context.Context, req tasks.UpdateTaskRequest) (*taskdomain.Task, error) {
			gotReq = req
			return &taskdomain.Task{ID: req.TaskID, Completed: true}, nil
		},
	}, &mockAIPort{})

	resp, _ := doJSON(t, app, "PUT", "/api/tasks/task-9", `{"completed":true}`)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if gotReq.TaskID != "task-9" || gotReq.UserID != "user-123" {
		t.Errorf("request not scoped: %+v", gotReq)
	}
	if gotReq.Completed == nil || !*gotReq.Completed {
		t.Error("completed flag not forwarded")
	}
	if gotReq.Title != nil || gotReq.Priority != nil {
		t.Error("absent fields must stay nil")
	}
}

func TestDeleteTask(t *testing.T) {
	app := testApp(&mockTasksPort{
		deleteFunc: func(ctx context.Context, userID, taskID string) error {
			return nil
		},
	}, &mockAIPort{})

	resp, body := doJSON(t, app, "DELETE", "/api/tasks/task-1", "")

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(body, "Task deleted successfully") {
		t.Errorf("body = %v", body)
	}
}

func TestCreateTaskFromText(t *testing.T) {
	t.Run("parsed fields persisted", func(t *testing.T) {
		app := testApp(&mockTasksPort{
			createFunc: func(ctx context.Context, req tasks.CreateTaskRequest) (*taskdomain.Task, error) {
				return &taskdomain.Task{ID: "task-2", Title: req.Title, Priority: req.Priority}, nil
			},
		}, &mockAIPort{
			parseFunc: func(ctx context.Context, input string) (*ai.ParseOutcome, error) {
				return &ai.ParseOutcome{
					Fields: ai.TaskFields{Title: "Call dentist", Priority: taskdomain.PriorityHigh},
					Source: ai.SourceHeuristic,
				}, nil
			},
		})

		resp, body := doJSON(t, app, "POST", "/api/tasks/ai",
			`{"natural_language_input":"Call dentist tomorrow urgent"}`)

		if resp.StatusCode != http.StatusCreated {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusCreated)
		}
		if !strings.Contains(body, "Call dentist") {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("body field name matches the wire contract", func(t *testing.T) {
		var gotInput string
		app := testApp(&mockTasksPort{}, &mockAIPort{
			parseFunc: func(ctx context.Context, input string) (*ai.ParseOutcome, error) {
				gotInput = input
				return &ai.ParseOutcome{
					Fields: ai.TaskFields{Title: "Buy groceries"},
					Source: ai.SourceHeuristic,
				}, nil
			},
		})

		resp, _ := doJSON(t, app, "POST", "/api/ai-tasks/create",
			`{"natural_language_input":"Buy groceries this weekend"}`)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusOK)
		}
		if gotInput != "Buy groceries this weekend" {
			t.Errorf("parsed input = %q, body field was not decoded", gotInput)
		}
	})

	t.Run("missing input maps to 400", func(t *testing.T) {
		app := testApp(&mockTasksPort{}, &mockAIPort{})

		resp, body := doJSON(t, app, "POST", "/api/tasks/ai", `{"natural_language_input":"  "}`)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %v, want %v", resp.StatusCode, http.StatusBadRequest)
		}
		if !strings.Contains(body, "Natural language input is required") {
			t.Errorf("body = %v", body)
		}
	})
}
