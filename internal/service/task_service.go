package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nolanpk/taskwell-api/internal/domain"
	"github.com/nolanpk/taskwell-api/internal/platform/logger"
	"github.com/nolanpk/taskwell-api/internal/store"
)

// TaskPatch describes a partial task update. Nil fields keep their
// current value.
type TaskPatch struct {
	Name      *string
	Completed *bool
}

// TaskService provides owner-scoped CRUD over tasks.
//
// Every method takes the owner ID resolved from the authenticated principal;
// none of them accept a caller-supplied owner. Tasks belonging to a
// different user surface as store.ErrTaskNotFound, never as a permission
// error.
type TaskService interface {
	// ListTasks returns the owner's tasks, incomplete first, newest-first
	// within each group. Empty slice (never an error) when there are none.
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// GetTask retrieves a single task by (id, ownerID).
	GetTask(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// CreateTask creates a task for the owner. The name must be non-empty
	// after trimming.
	CreateTask(ctx context.Context, ownerID uuid.UUID, name string, completed bool) (*domain.Task, error)

	// UpdateTask applies a partial update to the task identified by
	// (id, ownerID) and returns the updated task.
	UpdateTask(ctx context.Context, id, ownerID uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// DeleteTask removes the task identified by (id, ownerID).
	DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// ListTasks returns the owner's tasks in display order.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Task, error) {
	return s.taskStore.ListForUser(ctx, ownerID)
}

// GetTask retrieves a single task scoped by owner.
func (s *TaskServiceImpl) GetTask(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (*domain.Task, error) {
	return s.taskStore.GetForUser(ctx, id, ownerID)
}

// CreateTask creates a new task owned by ownerID. The owner always comes
// from the resolved principal, never from client input.
func (s *TaskServiceImpl) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
	completed bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(ownerID, name, completed)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			"error", err,
			"user_id", ownerID)
		return nil, err
	}

	return task, nil
}

// UpdateTask loads the task scoped by owner, applies only the fields
// present in the patch, and persists the result. Concurrent updates are
// last-write-wins.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	id, ownerID uuid.UUID,
	patch TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetForUser(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, domain.ErrEmptyTaskName
		}
		task.Name = trimmed
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.taskStore.Update(ctx, task); err != nil {
		log.Error("failed to update task",
			"error", err,
			"task_id", id,
			"user_id", ownerID)
		return nil, err
	}

	return task, nil
}

// DeleteTask removes the task scoped by owner.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.taskStore.DeleteForUser(ctx, id, ownerID)
}
