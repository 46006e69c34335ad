package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/opsdash/internal/model"
)

const dateLayout = "2006-01-02"

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

const taskCols = `id, project_id, title, description, due_date, priority, assignee, status, created_at, updated_at`

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var dueDate sql.NullString

	err := scanner.Scan(
		&t.ID, &t.ProjectID, &t.Title, &t.Description, &dueDate,
		&t.Priority, &t.Assignee, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid && dueDate.String != "" {
		d, err := time.Parse(dateLayout, dueDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse due date %q: %w", dueDate.String, err)
		}
		t.DueDate = &d
	}
	return &t, nil
}

func dueDateArg(d *time.Time) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Format(dateLayout), Valid: true}
}

// Create inserts a task. Only the calendar date of dueDate is kept.
func (s *TaskStore) Create(projectID int64, title, description string, dueDate *time.Time, priority, assignee, status string) (*model.Task, error) {
	if priority == "" {
		priority = model.PriorityMedium
	}
	if status == "" {
		status = model.StatusTodo
	}

	result, err := s.db.Exec(
		`INSERT INTO tasks (project_id, title, description, due_date, priority, assignee, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		projectID, title, description, dueDateArg(dueDate), priority, assignee, status,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) GetByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) List() ([]model.Task, error) {
	return s.query(`SELECT ` + taskCols + ` FROM tasks
		ORDER BY due_date IS NULL, due_date ASC, id ASC`)
}

func (s *TaskStore) ListByProject(projectID int64) ([]model.Task, error) {
	return s.query(`SELECT `+taskCols+` FROM tasks WHERE project_id = ?
		ORDER BY due_date IS NULL, due_date ASC, id ASC`, projectID)
}

func (s *TaskStore) query(q string, args ...any) ([]model.Task, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) UpdateStatus(id int64, status string) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) Delete(id int64) error {
	if _, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
