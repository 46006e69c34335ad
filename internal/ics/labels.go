package ics

import "github.com/dukerupert/opsdash/internal/model"

const (
	CategoryMeeting = "MEETING"
	CategoryTask    = "TASK"
)

const (
	MeetingMarker = "📅"
	TaskMarker    = "✅"
)

const (
	defaultPriorityLabel = "Unspecified"
	defaultStatusLabel   = "Unknown"
	defaultCategoryLabel = "Event"
)

// PriorityLabel returns the display label for a task priority.
func PriorityLabel(priority string) string {
	switch priority {
	case model.PriorityLow:
		return "Low"
	case model.PriorityMedium:
		return "Medium"
	case model.PriorityHigh:
		return "High"
	case model.PriorityUrgent:
		return "Urgent"
	default:
		return defaultPriorityLabel
	}
}

// StatusLabel returns the display label for a task status.
func StatusLabel(status string) string {
	switch status {
	case model.StatusTodo:
		return "To do"
	case model.StatusInProgress:
		return "In progress"
	case model.StatusDone:
		return "Done"
	default:
		return defaultStatusLabel
	}
}

// CategoryLabel returns the display label for an event category tag.
func CategoryLabel(category string) string {
	switch category {
	case CategoryMeeting:
		return "Meeting"
	case CategoryTask:
		return "Task"
	default:
		return defaultCategoryLabel
	}
}
