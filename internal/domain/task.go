package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors.
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskName  = errors.New("task name cannot be empty")
	ErrEmptyTaskOwner = errors.New("task owner ID cannot be empty")
)

// Task represents a single to-do item owned by exactly one user.
// Every read or mutation of a task is scoped by (ID, UserID); a task
// belonging to another user is indistinguishable from a missing one.
type Task struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTask creates a new Task for the given owner.
// It generates a new UUID for the task ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTask(userID uuid.UUID, name string, completed bool) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Completed: completed,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTaskName
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	return nil
}
