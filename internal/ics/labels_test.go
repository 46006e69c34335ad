package ics

import "testing"

func TestLabels(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"priority low", PriorityLabel, "low", "Low"},
		{"priority urgent", PriorityLabel, "urgent", "Urgent"},
		{"priority unknown", PriorityLabel, "someday", "Unspecified"},
		{"priority empty", PriorityLabel, "", "Unspecified"},
		{"status in progress", StatusLabel, "in_progress", "In progress"},
		{"status unknown", StatusLabel, "blocked", "Unknown"},
		{"category task", CategoryLabel, "TASK", "Task"},
		{"category lower case", CategoryLabel, "meeting", "Event"},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}
