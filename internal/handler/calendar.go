package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/dukerupert/opsdash/internal/ics"
	"github.com/dukerupert/opsdash/internal/importer"
	"github.com/dukerupert/opsdash/internal/metrics"
	"github.com/dukerupert/opsdash/internal/model"
	"github.com/dukerupert/opsdash/internal/store"
	"github.com/dukerupert/opsdash/internal/websocket"
)

const maxImportSize = 5 << 20

type CalendarHandler struct {
	meetings   *store.MeetingStore
	tasks      *store.TaskStore
	projects   *store.ProjectStore
	encoder    *ics.Encoder
	sessions   *importer.Sessions
	reconciler *importer.Reconciler
	hub        *websocket.Hub
	logger     *slog.Logger
}

func NewCalendarHandler(ms *store.MeetingStore, ts *store.TaskStore, ps *store.ProjectStore, enc *ics.Encoder, sessions *importer.Sessions, rec *importer.Reconciler, hub *websocket.Hub, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{
		meetings:   ms,
		tasks:      ts,
		projects:   ps,
		encoder:    enc,
		sessions:   sessions,
		reconciler: rec,
		hub:        hub,
		logger:     logger,
	}
}

// Export writes meetings and tasks, optionally limited to one project, as a
// calendar document download.
func (h *CalendarHandler) Export(w http.ResponseWriter, r *http.Request) {
	projectID, err := parseProjectFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project_id")
		return
	}

	var (
		meetings []model.Meeting
		tasks    []model.Task
	)
	if projectID != nil {
		meetings, err = h.meetings.ListByProject(*projectID)
		if err == nil {
			tasks, err = h.tasks.ListByProject(*projectID)
		}
	} else {
		meetings, err = h.meetings.List()
		if err == nil {
			tasks, err = h.tasks.List()
		}
	}
	if err != nil {
		h.logger.Error("load export records", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	events := h.encoder.Events(meetings, tasks)
	for _, ev := range events {
		metrics.IncrementEventsExported(ev.Category)
	}
	h.logger.Info("calendar exported", "events", len(events), "meetings", len(meetings), "tasks", len(tasks))

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="opsdash.ics"`)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, h.encoder.Render(events))
}

// Import decodes an uploaded document and opens an import session for it.
// The body is either the raw document or a multipart form with a "file"
// field. With ?mode=strict the document must be valid RFC 5545.
func (h *CalendarHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var events []ics.ParsedEvent
	if r.URL.Query().Get("mode") == "strict" {
		events, err = ics.DecodeStrict(bytes.NewReader(data))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid calendar: "+err.Error())
			return
		}
	} else {
		events = ics.Decode(string(data))
	}
	for _, ev := range events {
		metrics.IncrementEventsDecoded(ev.Date != nil)
	}

	projects, err := h.projects.List()
	if err != nil {
		h.logger.Error("list projects", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	sess, err := h.sessions.Create(events, projects)
	if err != nil {
		h.logger.Error("create import session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create import session")
		return
	}

	h.logger.Info("import decoded", "session", sess.ID, "events", len(events))
	writeJSON(w, http.StatusCreated, sess)
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read body")
		}
		return data, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file is required")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file")
	}
	return data, nil
}

func (h *CalendarHandler) GetImport(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get import session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get import session")
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, "import session not found")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// assignmentRequest replaces one entry's decision. An empty kind keeps the
// current kind; a null project_id clears the project.
type assignmentRequest struct {
	Kind      string `json:"kind"`
	ProjectID *int64 `json:"project_id"`
	Skip      bool   `json:"skip"`
}

func (h *CalendarHandler) Assign(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid index")
		return
	}

	var req assignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	sess, err := h.sessions.Update(r.PathValue("id"), func(s *importer.Session) error {
		if req.Kind != "" {
			if err := s.SetKind(index, importer.Kind(req.Kind)); err != nil {
				return err
			}
		}
		if err := s.SetProject(index, req.ProjectID); err != nil {
			return err
		}
		return s.SetSkip(index, req.Skip)
	})
	switch {
	case errors.Is(err, importer.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, importer.ErrUnknownProject), errors.Is(err, importer.ErrUnknownKind):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("update import session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update import session")
		return
	case sess == nil:
		writeError(w, http.StatusNotFound, "import session not found")
		return
	}

	writeJSON(w, http.StatusOK, sess.Assignments[index])
}

// Commit persists the session's eligible entries. A persistence failure
// answers 502 with the counts reached so far.
func (h *CalendarHandler) Commit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	res, err := h.sessions.Commit(id, h.reconciler)

	var ce *importer.CommitError
	switch {
	case errors.As(err, &ce):
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":     fmt.Sprintf("committed %d of %d: %v", res.Committed, res.Eligible, ce),
			"attempted": res.Attempted,
			"committed": res.Committed,
		})
		h.notifyCommitted(id, *res)
		return
	case err != nil:
		h.logger.Error("commit import session", "session", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to commit import session")
		return
	case res == nil:
		writeError(w, http.StatusNotFound, "import session not found")
		return
	}

	h.notifyCommitted(id, *res)
	writeJSON(w, http.StatusOK, res)
}

func (h *CalendarHandler) notifyCommitted(id string, res importer.Result) {
	if res.Committed == 0 {
		return
	}
	h.hub.Notify(websocket.EntityImport, websocket.ActionCommitted, 0, map[string]any{
		"session":   id,
		"committed": res.Committed,
	})
}
