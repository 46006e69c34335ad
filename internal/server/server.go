package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukerupert/opsdash/internal/config"
	"github.com/dukerupert/opsdash/internal/handler"
	"github.com/dukerupert/opsdash/internal/ics"
	"github.com/dukerupert/opsdash/internal/importer"
	"github.com/dukerupert/opsdash/internal/middleware"
	"github.com/dukerupert/opsdash/internal/store"
	ws "github.com/dukerupert/opsdash/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	projectH    *handler.ProjectHandler
	meetingH    *handler.MeetingHandler
	taskH       *handler.TaskHandler
	calendarH   *handler.CalendarHandler
	rateLimiter *middleware.RateLimiter
	cfg         config.Config
	logger      *slog.Logger
}

func New(db *sql.DB, cfg config.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger)

	projectStore := store.NewProjectStore(db)
	meetingStore := store.NewMeetingStore(db)
	taskStore := store.NewTaskStore(db)
	sessions := importer.NewSessions(store.NewImportSessionStore(db))
	reconciler := importer.NewReconciler(store.NewImportCreator(meetingStore, taskStore), logger)
	encoder := ics.NewEncoder(cfg.Calendar.Domain, cfg.Calendar.Product, cfg.Calendar.Locale)

	return &Server{
		db:          db,
		hub:         hub,
		projectH:    handler.NewProjectHandler(projectStore, hub, logger.With("component", "project")),
		meetingH:    handler.NewMeetingHandler(meetingStore, projectStore, hub, logger.With("component", "meeting")),
		taskH:       handler.NewTaskHandler(taskStore, projectStore, hub, logger.With("component", "task")),
		calendarH:   handler.NewCalendarHandler(meetingStore, taskStore, projectStore, encoder, sessions, reconciler, hub, logger.With("component", "calendar")),
		rateLimiter: middleware.NewRateLimiter(),
		cfg:         cfg,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, nil))

	mux.HandleFunc("GET /api/projects", s.projectH.List)
	mux.HandleFunc("GET /api/meetings", s.meetingH.List)
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("GET /api/calendar/export.ics", s.calendarH.Export)
	mux.HandleFunc("GET /api/calendar/imports/{id}", s.calendarH.GetImport)

	protect := middleware.RequireToken(s.cfg.Auth.TokenHash)
	mux.Handle("POST /api/projects", protect(http.HandlerFunc(s.projectH.Create)))
	mux.Handle("POST /api/meetings", protect(http.HandlerFunc(s.meetingH.Create)))
	mux.Handle("POST /api/tasks", protect(http.HandlerFunc(s.taskH.Create)))
	mux.Handle("PUT /api/tasks/{id}/status", protect(http.HandlerFunc(s.taskH.UpdateStatus)))
	mux.Handle("POST /api/calendar/imports", protect(s.importRateLimited(http.HandlerFunc(s.calendarH.Import))))
	mux.Handle("PUT /api/calendar/imports/{id}/assignments/{index}", protect(http.HandlerFunc(s.calendarH.Assign)))
	mux.Handle("POST /api/calendar/imports/{id}/commit", protect(http.HandlerFunc(s.calendarH.Commit)))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"status": status, "clients": s.hub.ClientCount()})
}

func (s *Server) importRateLimited(h http.Handler) http.Handler {
	return middleware.RateLimit(s.rateLimiter, middleware.RealIP, s.cfg.Server.ImportRateLimit, time.Minute)(h)
}
