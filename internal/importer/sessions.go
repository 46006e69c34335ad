package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dukerupert/opsdash/internal/ics"
	"github.com/dukerupert/opsdash/internal/model"
)

// SessionStore persists encoded sessions by ID. Load returns nil, nil for
// an unknown ID.
type SessionStore interface {
	SaveSession(id string, payload []byte) error
	LoadSession(id string) ([]byte, error)
	DeleteSession(id string) error
}

// Sessions manages pending imports. Mutations of a session are serialised.
type Sessions struct {
	store SessionStore
	mu    sync.Mutex
}

func NewSessions(store SessionStore) *Sessions {
	return &Sessions{store: store}
}

// Create starts a session for freshly decoded events.
func (s *Sessions) Create(events []ics.ParsedEvent, projects []model.Project) (*Session, error) {
	if projects == nil {
		projects = []model.Project{}
	}
	sess := &Session{
		ID:          uuid.NewString(),
		Assignments: NewAssignments(events),
		Projects:    projects,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the session, or nil if it does not exist.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id)
}

// Update loads the session, applies fn and saves the result. The session is
// left untouched when fn fails. Update returns nil, nil for an unknown ID.
func (s *Sessions) Update(id string, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(id)
	if err != nil || sess == nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Commit runs r over the session's assignments under the session lock. A
// fully committed session is deleted. After a partial failure the entries
// already persisted are marked skipped and the session is kept, so a retry
// never creates them twice. Commit returns nil, nil for an unknown ID.
func (s *Sessions) Commit(id string, r *Reconciler) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(id)
	if err != nil || sess == nil {
		return nil, err
	}

	res, commitErr := r.Commit(sess.Assignments)
	if commitErr != nil {
		var ce *CommitError
		if errors.As(commitErr, &ce) {
			sess.SkipBefore(ce.Index)
			if err := s.save(sess); err != nil {
				return &res, errors.Join(commitErr, err)
			}
		}
		return &res, commitErr
	}

	if err := s.store.DeleteSession(id); err != nil {
		return &res, fmt.Errorf("delete session: %w", err)
	}
	return &res, nil
}

func (s *Sessions) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.DeleteSession(id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Sessions) load(id string) (*Session, error) {
	payload, err := s.store.LoadSession(id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if payload == nil {
		return nil, nil
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *Sessions) save(sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.SaveSession(sess.ID, payload); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
