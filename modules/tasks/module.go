package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"

	domain "github.com/example/task-manager/domain/task"
)

// TasksModule provides the owner-scoped task store.
type TasksModule struct {
	db      *gorm.DB
	service *TaskService
}

// Compile-time interface checks.
var _ mono.Module = (*TasksModule)(nil)
var _ mono.ServiceProviderModule = (*TasksModule)(nil)
var _ mono.HealthCheckableModule = (*TasksModule)(nil)

// NewModule creates a new TasksModule sharing the given database handle.
func NewModule(db *gorm.DB) *TasksModule {
	return &TasksModule{
		db: db,
	}
}

// Name returns the module name.
func (m *TasksModule) Name() string {
	return "tasks"
}

// Start initializes the tasks module.
func (m *TasksModule) Start(_ context.Context) error {
	if err := m.db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewTaskService(NewRepository(m.db))

	log.Println("[tasks] Module started")
	return nil
}

// Stop shuts down the module.
func (m *TasksModule) Stop(_ context.Context) error {
	log.Println("[tasks] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TasksModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TasksModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name string
		err  error
	}{
		{"create", helper.RegisterTypedRequestReplyService(container, "create", json.Unmarshal, json.Marshal, m.handleCreate)},
		{"list", helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.handleList)},
		{"get", helper.RegisterTypedRequestReplyService(container, "get", json.Unmarshal, json.Marshal, m.handleGet)},
		{"update", helper.RegisterTypedRequestReplyService(container, "update", json.Unmarshal, json.Marshal, m.handleUpdate)},
		{"delete", helper.RegisterTypedRequestReplyService(container, "delete", json.Unmarshal, json.Marshal, m.handleDelete)},
	}

	for _, s := range services {
		if s.err != nil {
			return fmt.Errorf("failed to register %s service: %w", s.name, s.err)
		}
	}

	log.Printf("[tasks] Registered services: create, list, get, update, delete")
	return nil
}

// handleCreate handles task creation.
func (m *TasksModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.Create(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

// handleList handles listing a user's tasks.
func (m *TasksModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	found, err := m.service.List(ctx, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{
		Tasks: make([]domain.Task, 0, len(found)),
		Total: len(found),
	}
	for _, t := range found {
		resp.Tasks = append(resp.Tasks, *t)
	}
	return resp, nil
}

// handleGet handles fetching a single task.
func (m *TasksModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.Get(ctx, req.UserID, req.TaskID)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

// handleUpdate handles partial task updates.
func (m *TasksModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	t, err := m.service.Update(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	return *t, nil
}

// handleDelete handles task deletion.
func (m *TasksModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.TaskID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.TaskID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.TaskID}, nil
}
