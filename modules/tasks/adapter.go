package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/task-manager/domain/task"
)

// TasksPort defines the interface other modules use to access the task
// store. All operations are owner-scoped.
type TasksPort interface {
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]domain.Task, error)
	Get(ctx context.Context, userID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

// TasksAdapter implements TasksPort using the service container.
type TasksAdapter struct {
	container mono.ServiceContainer
}

// NewTasksAdapter creates a new TasksAdapter.
func NewTasksAdapter(container mono.ServiceContainer) *TasksAdapter {
	return &TasksAdapter{
		container: container,
	}
}

// Create creates a task through the tasks service.
func (a *TasksAdapter) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := a.call(ctx, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List fetches all tasks owned by userID.
func (a *TasksAdapter) List(ctx context.Context, userID string) ([]domain.Task, error) {
	req := ListTasksRequest{UserID: userID}
	var resp ListTasksResponse
	if err := a.call(ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// Get fetches a single task owned by userID.
func (a *TasksAdapter) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	req := GetTaskRequest{UserID: userID, TaskID: taskID}
	var resp domain.Task
	if err := a.call(ctx, "get", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update applies a partial update to a task owned by the requesting user.
func (a *TasksAdapter) Update(ctx context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	var resp domain.Task
	if err := a.call(ctx, "update", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a task owned by userID.
func (a *TasksAdapter) Delete(ctx context.Context, userID, taskID string) error {
	req := DeleteTaskRequest{UserID: userID, TaskID: taskID}
	var resp DeleteTaskResponse
	return a.call(ctx, "delete", &req, &resp)
}

func (a *TasksAdapter) call(ctx context.Context, service string, req, resp any) error {
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
