package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/opsdash/internal/model"
)

type MeetingStore struct {
	db *sql.DB
}

func NewMeetingStore(db *sql.DB) *MeetingStore {
	return &MeetingStore{db: db}
}

const meetingCols = `id, project_id, title, objective, scheduled_at, created_at, updated_at`

func scanMeeting(scanner interface{ Scan(...any) error }) (*model.Meeting, error) {
	var m model.Meeting
	var scheduledAt sql.NullTime

	if err := scanner.Scan(&m.ID, &m.ProjectID, &m.Title, &m.Objective, &scheduledAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time.UTC()
		m.ScheduledAt = &t
	}
	m.Participants = []model.Participant{}
	return &m, nil
}

// Create inserts a meeting and its participants in one transaction.
func (s *MeetingStore) Create(projectID int64, title, objective string, scheduledAt *time.Time, participants []model.Participant) (*model.Meeting, error) {
	var sched sql.NullTime
	if scheduledAt != nil {
		sched = sql.NullTime{Time: scheduledAt.UTC(), Valid: true}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO meetings (project_id, title, objective, scheduled_at) VALUES (?, ?, ?, ?)`,
		projectID, title, objective, sched,
	)
	if err != nil {
		return nil, fmt.Errorf("insert meeting: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	for _, p := range participants {
		if _, err := tx.Exec(
			`INSERT INTO meeting_participants (meeting_id, name, email) VALUES (?, ?, ?)`,
			id, p.Name, p.Email,
		); err != nil {
			return nil, fmt.Errorf("insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit meeting: %w", err)
	}
	return s.GetByID(id)
}

func (s *MeetingStore) GetByID(id int64) (*model.Meeting, error) {
	row := s.db.QueryRow(`SELECT `+meetingCols+` FROM meetings WHERE id = ?`, id)
	m, err := scanMeeting(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meeting: %w", err)
	}

	participants, err := s.participants(id)
	if err != nil {
		return nil, err
	}
	m.Participants = participants
	return m, nil
}

// List returns every meeting, scheduled ones first in chronological order.
func (s *MeetingStore) List() ([]model.Meeting, error) {
	return s.query(`SELECT ` + meetingCols + ` FROM meetings
		ORDER BY scheduled_at IS NULL, scheduled_at ASC, id ASC`)
}

func (s *MeetingStore) ListByProject(projectID int64) ([]model.Meeting, error) {
	return s.query(`SELECT `+meetingCols+` FROM meetings WHERE project_id = ?
		ORDER BY scheduled_at IS NULL, scheduled_at ASC, id ASC`, projectID)
}

func (s *MeetingStore) query(q string, args ...any) ([]model.Meeting, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}

	var meetings []model.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, *m)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}

	// Participants are loaded after the meeting rows are released; an
	// in-memory database only has one connection.
	for i := range meetings {
		participants, err := s.participants(meetings[i].ID)
		if err != nil {
			return nil, err
		}
		meetings[i].Participants = participants
	}
	return meetings, nil
}

func (s *MeetingStore) participants(meetingID int64) ([]model.Participant, error) {
	rows, err := s.db.Query(
		`SELECT id, meeting_id, name, email FROM meeting_participants WHERE meeting_id = ? ORDER BY id`,
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	participants := []model.Participant{}
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.ID, &p.MeetingID, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (s *MeetingStore) Delete(id int64) error {
	if _, err := s.db.Exec("DELETE FROM meetings WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	return nil
}
