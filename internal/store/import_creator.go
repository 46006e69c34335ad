package store

import (
	"fmt"
	"time"

	"github.com/dukerupert/opsdash/internal/model"
)

// ImportCreator persists imported calendar events as meetings and tasks.
type ImportCreator struct {
	meetings *MeetingStore
	tasks    *TaskStore
}

func NewImportCreator(meetings *MeetingStore, tasks *TaskStore) *ImportCreator {
	return &ImportCreator{meetings: meetings, tasks: tasks}
}

func (c *ImportCreator) CreateMeeting(projectID int64, title, objective string, scheduledAt time.Time) error {
	if _, err := c.meetings.Create(projectID, title, objective, &scheduledAt, nil); err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}

func (c *ImportCreator) CreateTask(projectID int64, title, description string, dueDate *time.Time) error {
	if _, err := c.tasks.Create(projectID, title, description, dueDate, model.PriorityMedium, "", model.StatusTodo); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}
