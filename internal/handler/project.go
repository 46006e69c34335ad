package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/opsdash/internal/model"
	"github.com/dukerupert/opsdash/internal/store"
	"github.com/dukerupert/opsdash/internal/websocket"
)

type ProjectHandler struct {
	projects *store.ProjectStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewProjectHandler(ps *store.ProjectStore, hub *websocket.Hub, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: ps, hub: hub, logger: logger}
}

type projectRequest struct {
	Name   string `json:"name"`
	Client string `json:"client"`
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List()
	if err != nil {
		h.logger.Error("list projects", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	project, err := h.projects.Create(req.Name, strings.TrimSpace(req.Client))
	if err != nil {
		h.logger.Error("create project", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	h.hub.Notify(websocket.EntityProject, websocket.ActionCreated, project.ID, nil)
	writeJSON(w, http.StatusCreated, project)
}
