package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/opsdash/internal/model"
	"github.com/dukerupert/opsdash/internal/store"
	"github.com/dukerupert/opsdash/internal/websocket"
)

type TaskHandler struct {
	tasks    *store.TaskStore
	projects *store.ProjectStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, ps *store.ProjectStore, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: ts, projects: ps, hub: hub, logger: logger}
}

type taskRequest struct {
	ProjectID   int64  `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	Status      string `json:"status"`
}

var (
	validPriorities = map[string]bool{
		model.PriorityLow: true, model.PriorityMedium: true, model.PriorityHigh: true, model.PriorityUrgent: true,
	}
	validStatuses = map[string]bool{
		model.StatusTodo: true, model.StatusInProgress: true, model.StatusDone: true,
	}
)

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseProjectFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project_id")
		return
	}

	var tasks []model.Task
	if projectID != nil {
		tasks, err = h.tasks.ListByProject(*projectID)
	} else {
		tasks, err = h.tasks.List()
	}
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Priority != "" && !validPriorities[req.Priority] {
		writeError(w, http.StatusBadRequest, "priority must be low, medium, high or urgent")
		return
	}
	if req.Status != "" && !validStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "status must be todo, in_progress or done")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be YYYY-MM-DD format")
			return
		}
		dueDate = &d
	}

	if !requireProject(w, h.projects, req.ProjectID, h.logger) {
		return
	}

	task, err := h.tasks.Create(req.ProjectID, req.Title, strings.TrimSpace(req.Description), dueDate, req.Priority, strings.TrimSpace(req.Assignee), req.Status)
	if err != nil {
		h.logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	h.hub.Notify(websocket.EntityTask, websocket.ActionCreated, task.ID, map[string]any{"project_id": task.ProjectID})
	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !validStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "status must be todo, in_progress or done")
		return
	}

	existing, err := h.tasks.GetByID(id)
	if err != nil {
		h.logger.Error("get task", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get task")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	task, err := h.tasks.UpdateStatus(id, req.Status)
	if err != nil {
		h.logger.Error("update task status", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}

	h.hub.Notify(websocket.EntityTask, websocket.ActionUpdated, task.ID, map[string]any{"status": task.Status})
	writeJSON(w, http.StatusOK, task)
}
