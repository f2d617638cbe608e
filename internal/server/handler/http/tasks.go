package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ds9759045455-stack/smart-scheduler/internal/middleware"
	"github.com/ds9759045455-stack/smart-scheduler/internal/models"
	"github.com/ds9759045455-stack/smart-scheduler/internal/session"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaskService defines the interface for task operations required by the
// dashboard handlers. All operations are scoped to the authenticated
// account id taken from the request context.
type TaskService interface {
	// List returns all tasks owned by accountID in insertion order.
	List(ctx context.Context, accountID int64) ([]models.Task, error)
	// Add creates a Pending task owned by accountID.
	Add(ctx context.Context, accountID int64, title, priority, dueDate string) (models.Task, error)
	// Toggle flips the task's status; silently a no-op for a nonexistent
	// or non-owned id.
	Toggle(ctx context.Context, accountID, taskID int64) error
	// Delete removes the task; silently a no-op for a nonexistent or
	// non-owned id.
	Delete(ctx context.Context, accountID, taskID int64) error
}

// TaskHandler handles the dashboard and task mutation routes. All routes
// are mounted behind the SessionAuth middleware, so the account id is
// always present in the request context.
type TaskHandler struct {
	// TaskService performs the underlying task operations.
	TaskService TaskService
	// Sessions carries flash notices between redirects.
	Sessions *session.Manager
	// Log is the structured logger for storage failures.
	Log *zap.Logger
}

// Dashboard renders the account's task list.
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountIDFromContext(r.Context())

	tasks, err := h.TaskService.List(r.Context(), accountID)
	if err != nil {
		h.Log.Error("list tasks failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render(w, "dashboard.html", page{
		Flashes: popFlashes(h.Sessions, r),
		Tasks:   tasks,
	})
}

// AddTask handles the add-task form POST. The new task always starts
// Pending; title, priority, and due_date are required fields.
func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountIDFromContext(r.Context())

	title := r.FormValue("title")
	priority := r.FormValue("priority")
	dueDate := r.FormValue("due_date")
	if title == "" || priority == "" || dueDate == "" {
		h.flash(w, r, "All task fields are required")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if _, err := h.TaskService.Add(r.Context(), accountID, title, priority, dueDate); err != nil {
		h.Log.Error("add task failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.flash(w, r, "Task added successfully")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ToggleStatus flips the status of the task in the URL. A task id the
// account does not own is silently a no-op; either way the browser lands
// back on the dashboard.
func (h *TaskHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountIDFromContext(r.Context())

	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.TaskService.Toggle(r.Context(), accountID, taskID); err != nil {
		h.Log.Error("toggle task failed", zap.Error(err), zap.Int64("task_id", taskID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// DeleteTask removes the task in the URL, with the same fail-silent
// ownership contract as ToggleStatus.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountIDFromContext(r.Context())

	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.TaskService.Delete(r.Context(), accountID, taskID); err != nil {
		h.Log.Error("delete task failed", zap.Error(err), zap.Int64("task_id", taskID))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.flash(w, r, "Task deleted")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *TaskHandler) flash(w http.ResponseWriter, r *http.Request, msg string) {
	h.Sessions.Flash(requestToken(h.Sessions, w, r), msg)
}
