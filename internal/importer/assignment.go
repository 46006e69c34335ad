package importer

import (
	"errors"
	"fmt"

	"github.com/dukerupert/opsdash/internal/ics"
	"github.com/dukerupert/opsdash/internal/model"
)

// Kind is the record type an imported event becomes on commit.
type Kind string

const (
	KindMeeting Kind = "meeting"
	KindTask    Kind = "task"
)

var (
	ErrUnknownProject  = errors.New("unknown project")
	ErrIndexOutOfRange = errors.New("assignment index out of range")
	ErrUnknownKind     = errors.New("unknown kind")
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindMeeting, KindTask:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Assignment pairs a parsed event with the user's decision about it.
type Assignment struct {
	Event     ics.ParsedEvent `json:"event"`
	Kind      Kind            `json:"kind"`
	ProjectID *int64          `json:"project_id"`
	Skip      bool            `json:"skip"`
}

// Eligible reports whether commit will persist this entry.
func (a Assignment) Eligible() bool {
	return !a.Skip && a.ProjectID != nil
}

// NewAssignments derives the default assignment for each event: task when
// the event carries the task category, meeting otherwise, no project and
// not skipped.
func NewAssignments(events []ics.ParsedEvent) []Assignment {
	out := make([]Assignment, len(events))
	for i, ev := range events {
		kind := KindMeeting
		if ev.Category == ics.CategoryTask {
			kind = KindTask
		}
		out[i] = Assignment{Event: ev, Kind: kind}
	}
	return out
}

// Session is one pending import: the decoded assignments and the projects
// they may be assigned to.
type Session struct {
	ID          string          `json:"id"`
	Assignments []Assignment    `json:"assignments"`
	Projects    []model.Project `json:"projects"`
}

func (s *Session) at(i int) (*Assignment, error) {
	if i < 0 || i >= len(s.Assignments) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return &s.Assignments[i], nil
}

func (s *Session) SetKind(i int, kind Kind) error {
	a, err := s.at(i)
	if err != nil {
		return err
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}
	a.Kind = kind
	return nil
}

// SetProject assigns entry i to a project. A nil projectID clears the
// assignment, which makes commit skip the entry.
func (s *Session) SetProject(i int, projectID *int64) error {
	a, err := s.at(i)
	if err != nil {
		return err
	}
	if projectID == nil {
		a.ProjectID = nil
		return nil
	}
	if !s.hasProject(*projectID) {
		return fmt.Errorf("%w: %d", ErrUnknownProject, *projectID)
	}
	id := *projectID
	a.ProjectID = &id
	return nil
}

func (s *Session) SetSkip(i int, skip bool) error {
	a, err := s.at(i)
	if err != nil {
		return err
	}
	a.Skip = skip
	return nil
}

// SkipBefore marks every eligible entry before index as skipped. After a
// failed commit those entries are already persisted.
func (s *Session) SkipBefore(index int) {
	for i := 0; i < index && i < len(s.Assignments); i++ {
		if s.Assignments[i].Eligible() {
			s.Assignments[i].Skip = true
		}
	}
}

func (s *Session) hasProject(id int64) bool {
	for _, p := range s.Projects {
		if p.ID == id {
			return true
		}
	}
	return false
}
