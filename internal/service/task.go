package service

import (
	"context"

	"github.com/ds9759045455-stack/smart-scheduler/internal/models"
)

// TaskRepository defines the persistence operations required by the task
// service. Every operation is scoped by the owning account id.
type TaskRepository interface {
	// ListByAccount returns all tasks owned by accountID, ordered by id.
	ListByAccount(ctx context.Context, accountID int64) ([]models.Task, error)
	// CreateTask inserts the task and returns it with the assigned id.
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	// ToggleStatus flips the status of (taskID, accountID); silently a
	// no-op when no row matches.
	ToggleStatus(ctx context.Context, accountID, taskID int64) error
	// DeleteTask removes (taskID, accountID); silently a no-op when no
	// row matches.
	DeleteTask(ctx context.Context, accountID, taskID int64) error
}

// TaskService implements task management scoped to an owning account.
type TaskService struct {
	// repo performs the data-layer operations.
	repo TaskRepository
}

// NewTaskService constructs a TaskService with the provided repository.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// List returns all tasks owned by accountID in insertion order.
func (s *TaskService) List(ctx context.Context, accountID int64) ([]models.Task, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// Add creates a new task owned by accountID. Status is always initialized
// to Pending regardless of input.
func (s *TaskService) Add(ctx context.Context, accountID int64, title, priority, dueDate string) (models.Task, error) {
	return s.repo.CreateTask(ctx, models.Task{
		AccountID: accountID,
		Title:     title,
		Priority:  priority,
		DueDate:   dueDate,
		Status:    models.StatusPending,
	})
}

// Toggle flips the status of the task identified by (taskID, accountID).
// A nonexistent or non-owned id is silently a no-op, not an error.
func (s *TaskService) Toggle(ctx context.Context, accountID, taskID int64) error {
	return s.repo.ToggleStatus(ctx, accountID, taskID)
}

// Delete removes the task identified by (taskID, accountID). A nonexistent
// or non-owned id is silently a no-op, not an error.
func (s *TaskService) Delete(ctx context.Context, accountID, taskID int64) error {
	return s.repo.DeleteTask(ctx, accountID, taskID)
}
