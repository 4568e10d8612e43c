package tasks

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/example/task-manager/domain/task"
)

// ErrNotFound is returned when a task does not exist or is owned by a
// different user. The two cases are indistinguishable on purpose.
var ErrNotFound = errors.New("task not found")

// Repository provides owner-scoped access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task to the database.
func (r *Repository) Create(t *domain.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByOwner retrieves all tasks owned by userID, newest first. Clients
// re-sort locally, so the order here is only a sensible default.
func (r *Repository) FindByOwner(userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return out, nil
}

// FindByID retrieves a single task owned by userID.
func (r *Repository) FindByID(userID, taskID string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.First(&t, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// Save persists the full state of an existing task.
func (r *Repository) Save(t *domain.Task) error {
	if err := r.db.Save(t).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Delete removes a task owned by userID. Deleting a task that is absent or
// foreign-owned returns ErrNotFound, so a second delete of the same id is an
// error rather than a silent no-op.
func (r *Repository) Delete(userID, taskID string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND user_id = ?", taskID, userID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
