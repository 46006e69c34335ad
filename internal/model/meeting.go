package model

import "time"

type Participant struct {
	ID        int64  `json:"id"`
	MeetingID int64  `json:"meeting_id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
}

// Meeting is a scheduled discussion attached to a project. ScheduledAt is
// nil for meetings that have not been put on the calendar yet.
type Meeting struct {
	ID           int64         `json:"id"`
	ProjectID    int64         `json:"project_id"`
	Title        string        `json:"title"`
	Objective    string        `json:"objective"`
	ScheduledAt  *time.Time    `json:"scheduled_at"`
	Participants []Participant `json:"participants"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
