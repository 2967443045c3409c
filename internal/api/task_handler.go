package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nolanpk/taskwell-api/internal/api/middleware"
	"github.com/nolanpk/taskwell-api/internal/api/shared"
	"github.com/nolanpk/taskwell-api/internal/service"
)

// TaskHandler handles task CRUD API requests. The owner ID for every
// operation comes from the authenticated principal in the request context,
// never from client input.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ownerAndTaskID extracts the authenticated user's ID and the {id} path
// parameter. An unparseable id responds 404: a malformed id can never name
// an owned task, and 404 keeps ownership non-enumerable.
// Returns false if a response was already written.
func ownerAndTaskID(w http.ResponseWriter, r *http.Request) (ownerID, taskID uuid.UUID, ok bool) {
	ownerID, ok = middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return uuid.Nil, uuid.Nil, false
	}

	return ownerID, taskID, true
}

// List handles GET /api/v1/tasks.
// Incomplete tasks come first, newest-first within each group.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Create handles POST /api/v1/tasks, responding 201 with the created task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if errs := shared.ValidateRequest(req); errs != nil {
		shared.RespondWithValidationErrors(w, r, errs)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), ownerID, req.Name, *req.Completed)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Get handles GET /api/v1/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := ownerAndTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, ownerID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PATCH /api/v1/tasks/{id} with partial update semantics:
// omitted fields keep their current value.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := ownerAndTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if errs := shared.ValidateRequest(req); errs != nil {
		shared.RespondWithValidationErrors(w, r, errs)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, ownerID, service.TaskPatch{
		Name:      req.Name,
		Completed: req.Completed,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/v1/tasks/{id}, responding 204 on success.
// Deleting the same task twice yields 404 on the second call.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, taskID, ok := ownerAndTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID, ownerID); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
