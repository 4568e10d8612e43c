package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "github.com/example/task-manager/domain/task"
)

var (
	// ErrEmptyTitle is returned when a task is created or renamed with an
	// empty title.
	ErrEmptyTitle = errors.New("title is required")
	// ErrInvalidPriority is returned for an unknown priority value.
	ErrInvalidPriority = errors.New("priority must be low, medium or high")
)

// TaskService handles task business logic. Every operation is scoped to the
// owning user; no call can read or mutate another owner's tasks.
type TaskService struct {
	repo *Repository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *Repository) *TaskService {
	return &TaskService{repo: repo}
}

// Create validates and stores a new task for the given owner. The server
// assigns the id; completed always starts false.
func (s *TaskService) Create(_ context.Context, req CreateTaskRequest) (*domain.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if !req.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	t := &domain.Task{
		ID:          uuid.New().String(),
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Completed:   false,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return t, nil
}

// List returns all tasks owned by the user.
func (s *TaskService) List(_ context.Context, userID string) ([]*domain.Task, error) {
	return s.repo.FindByOwner(userID)
}

// Get returns a single task owned by the user.
func (s *TaskService) Get(_ context.Context, userID, taskID string) (*domain.Task, error) {
	return s.repo.FindByID(userID, taskID)
}

// Update merges the provided fields into the stored task. Fields left nil
// keep their current value; last write wins when updates race.
func (s *TaskService) Update(_ context.Context, req UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.repo.FindByID(req.UserID, req.TaskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrEmptyTitle
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		t.Priority = *req.Priority
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}

	if err := s.repo.Save(t); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return t, nil
}

// Delete removes the task. A second delete of the same id fails with
// ErrNotFound.
func (s *TaskService) Delete(_ context.Context, userID, taskID string) error {
	return s.repo.Delete(userID, taskID)
}
