package store

import (
	"database/sql"
	"fmt"
)

// ImportSessionStore keeps pending calendar imports between the upload and
// the commit. Payloads are opaque JSON documents owned by the importer.
type ImportSessionStore struct {
	db *sql.DB
}

func NewImportSessionStore(db *sql.DB) *ImportSessionStore {
	return &ImportSessionStore{db: db}
}

func (s *ImportSessionStore) SaveSession(id string, payload []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO import_sessions (id, payload) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		id, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save import session: %w", err)
	}
	return nil
}

// LoadSession returns nil, nil when the session does not exist.
func (s *ImportSessionStore) LoadSession(id string) ([]byte, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM import_sessions WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load import session: %w", err)
	}
	return []byte(payload), nil
}

func (s *ImportSessionStore) DeleteSession(id string) error {
	if _, err := s.db.Exec(`DELETE FROM import_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete import session: %w", err)
	}
	return nil
}
