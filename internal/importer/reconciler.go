package importer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/opsdash/internal/metrics"
	"github.com/dukerupert/opsdash/internal/model"
)

// Creator persists imported records.
type Creator interface {
	CreateMeeting(projectID int64, title, objective string, scheduledAt time.Time) error
	CreateTask(projectID int64, title, description string, dueDate *time.Time) error
}

// ProjectLister supplies the projects an import may target.
type ProjectLister interface {
	List() ([]model.Project, error)
}

// Result counts the work done by one commit.
type Result struct {
	Eligible  int `json:"eligible"`
	Attempted int `json:"attempted"`
	Committed int `json:"committed"`
}

// CommitError names the entry whose create failed. Entries before it are
// already persisted; entries after it were not attempted.
type CommitError struct {
	Index int
	Title string
	Err   error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit entry %d (%q): %v", e.Index, e.Title, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

type Reconciler struct {
	creator Creator
	now     func() time.Time
	logger  *slog.Logger
}

func NewReconciler(creator Creator, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		creator: creator,
		now:     time.Now,
		logger:  logger.With("component", "importer"),
	}
}

// Commit persists every eligible assignment in order, one at a time. It
// stops at the first failed create and returns the counts so far together
// with a *CommitError.
func (r *Reconciler) Commit(assignments []Assignment) (Result, error) {
	var res Result
	for _, a := range assignments {
		if a.Eligible() {
			res.Eligible++
		}
	}

	for i, a := range assignments {
		if !a.Eligible() {
			continue
		}
		res.Attempted++
		if err := r.create(a); err != nil {
			metrics.IncrementImportCommit(string(a.Kind), false)
			r.logger.Error("import create failed", "index", i, "kind", a.Kind, "title", a.Event.Summary, "error", err)
			return res, &CommitError{Index: i, Title: a.Event.Summary, Err: err}
		}
		metrics.IncrementImportCommit(string(a.Kind), true)
		res.Committed++
	}

	r.logger.Info("import committed", "committed", res.Committed, "eligible", res.Eligible, "total", len(assignments))
	return res, nil
}

func (r *Reconciler) create(a Assignment) error {
	ev := a.Event
	switch a.Kind {
	case KindTask:
		var due *time.Time
		if ev.Date != nil {
			d := time.Date(ev.Date.Year(), ev.Date.Month(), ev.Date.Day(), 0, 0, 0, 0, time.UTC)
			due = &d
		}
		return r.creator.CreateTask(*a.ProjectID, ev.Summary, ev.Description, due)
	case KindMeeting:
		scheduled := r.now().UTC()
		if ev.Date != nil {
			scheduled = *ev.Date
		}
		return r.creator.CreateMeeting(*a.ProjectID, ev.Summary, ev.Description, scheduled)
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, a.Kind)
}
