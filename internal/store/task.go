package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nolanpk/taskwell-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every method that addresses a single task takes both the task ID and the
// owner's user ID, and implementations MUST scope the underlying query by
// both. A task owned by someone else surfaces as ErrTaskNotFound, never as
// a permission error.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a task by (id, ownerID).
	// Returns ErrTaskNotFound if no such task exists for that owner.
	GetForUser(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// ListForUser returns all tasks owned by ownerID, incomplete tasks
	// first, newest-first within each group. Returns an empty slice
	// (never an error) when the owner has no tasks.
	ListForUser(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// Update persists the task's name, completed flag, and updated
	// timestamp, scoped by (task.ID, task.UserID).
	// Returns ErrTaskNotFound if no such task exists for that owner.
	Update(ctx context.Context, task *domain.Task) error

	// DeleteForUser removes the task identified by (id, ownerID).
	// Returns ErrTaskNotFound if no such task exists for that owner.
	DeleteForUser(ctx context.Context, id, ownerID uuid.UUID) error
}
