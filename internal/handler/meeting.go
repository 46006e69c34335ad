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

type MeetingHandler struct {
	meetings *store.MeetingStore
	projects *store.ProjectStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewMeetingHandler(ms *store.MeetingStore, ps *store.ProjectStore, hub *websocket.Hub, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{meetings: ms, projects: ps, hub: hub, logger: logger}
}

type meetingRequest struct {
	ProjectID    int64               `json:"project_id"`
	Title        string              `json:"title"`
	Objective    string              `json:"objective"`
	ScheduledAt  string              `json:"scheduled_at"`
	Participants []model.Participant `json:"participants"`
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseProjectFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project_id")
		return
	}

	var meetings []model.Meeting
	if projectID != nil {
		meetings, err = h.meetings.ListByProject(*projectID)
	} else {
		meetings, err = h.meetings.List()
	}
	if err != nil {
		h.logger.Error("list meetings", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list meetings")
		return
	}
	if meetings == nil {
		meetings = []model.Meeting{}
	}
	writeJSON(w, http.StatusOK, meetings)
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	var scheduledAt *time.Time
	if req.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "scheduled_at must be RFC3339 format")
			return
		}
		scheduledAt = &t
	}

	for i := range req.Participants {
		req.Participants[i].Name = strings.TrimSpace(req.Participants[i].Name)
		if req.Participants[i].Name == "" {
			writeError(w, http.StatusBadRequest, "participant name is required")
			return
		}
	}

	if !requireProject(w, h.projects, req.ProjectID, h.logger) {
		return
	}

	meeting, err := h.meetings.Create(req.ProjectID, req.Title, strings.TrimSpace(req.Objective), scheduledAt, req.Participants)
	if err != nil {
		h.logger.Error("create meeting", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create meeting")
		return
	}

	h.hub.Notify(websocket.EntityMeeting, websocket.ActionCreated, meeting.ID, map[string]any{"project_id": meeting.ProjectID})
	writeJSON(w, http.StatusCreated, meeting)
}

// requireProject writes an error response and returns false unless the
// project exists.
func requireProject(w http.ResponseWriter, projects *store.ProjectStore, id int64, logger *slog.Logger) bool {
	project, err := projects.GetByID(id)
	if err != nil {
		logger.Error("check project", "project_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to check project")
		return false
	}
	if project == nil {
		writeError(w, http.StatusBadRequest, "project not found")
		return false
	}
	return true
}
