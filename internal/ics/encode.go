package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/opsdash/internal/model"
)

const crlf = "\r\n"

const (
	meetingDuration = 60 * time.Minute
	taskStartHour   = 9
	taskEndHour     = 10
)

// Event is one encoded calendar entry before it is rendered as text.
type Event struct {
	UID         string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Category    string
}

// Encoder turns meetings and tasks into an interchange document. The zero
// value is not usable; create one with NewEncoder. An Encoder holds no
// mutable state and may be shared between goroutines.
type Encoder struct {
	domain  string
	product string
	locale  string
}

func NewEncoder(domain, product, locale string) *Encoder {
	if locale == "" {
		locale = "EN"
	}
	return &Encoder{domain: domain, product: product, locale: locale}
}

// EncodeMeeting maps a meeting to an event. Meetings without a scheduled
// instant are not encoded.
func (e *Encoder) EncodeMeeting(m model.Meeting) (Event, bool) {
	if m.ScheduledAt == nil {
		return Event{}, false
	}
	start := m.ScheduledAt.UTC()
	return Event{
		UID:         fmt.Sprintf("meeting-%d@%s", m.ID, e.domain),
		Start:       start,
		End:         start.Add(meetingDuration),
		Summary:     MeetingMarker + " " + Escape(m.Title),
		Description: Escape(m.Objective),
		Category:    CategoryMeeting,
	}, true
}

// EncodeTask maps a task to an event blocked out from 09:00 to 10:00 UTC on
// its due date. Tasks without a due date and finished tasks are not encoded.
func (e *Encoder) EncodeTask(t model.Task) (Event, bool) {
	if t.DueDate == nil || t.IsDone() {
		return Event{}, false
	}
	y, mo, d := t.DueDate.Date()
	lines := []string{
		Escape("Priority: " + PriorityLabel(t.Priority)),
		Escape("Assignee: " + t.Assignee),
	}
	return Event{
		UID:         fmt.Sprintf("task-%d@%s", t.ID, e.domain),
		Start:       time.Date(y, mo, d, taskStartHour, 0, 0, 0, time.UTC),
		End:         time.Date(y, mo, d, taskEndHour, 0, 0, 0, time.UTC),
		Summary:     TaskMarker + " " + Escape(t.Title),
		Description: strings.Join(lines, `\n`),
		Category:    CategoryTask,
	}, true
}

// Events encodes meetings then tasks, keeping the order of each input.
func (e *Encoder) Events(meetings []model.Meeting, tasks []model.Task) []Event {
	events := make([]Event, 0, len(meetings)+len(tasks))
	for _, m := range meetings {
		if ev, ok := e.EncodeMeeting(m); ok {
			events = append(events, ev)
		}
	}
	for _, t := range tasks {
		if ev, ok := e.EncodeTask(t); ok {
			events = append(events, ev)
		}
	}
	return events
}

// EncodeDocument renders a complete interchange document.
func (e *Encoder) EncodeDocument(meetings []model.Meeting, tasks []model.Task) string {
	return e.Render(e.Events(meetings, tasks))
}

// Render writes the calendar header, one block per event and the footer.
func (e *Encoder) Render(events []Event) string {
	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, fmt.Sprintf("PRODID:-//%s//Calendar//%s", e.product, e.locale))
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")
	for _, ev := range events {
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+ev.UID)
		writeLine(&b, "DTSTART:"+FormatTimestamp(ev.Start))
		writeLine(&b, "DTEND:"+FormatTimestamp(ev.End))
		writeLine(&b, "SUMMARY:"+ev.Summary)
		writeLine(&b, "DESCRIPTION:"+ev.Description)
		writeLine(&b, "CATEGORIES:"+ev.Category)
		writeLine(&b, "END:VEVENT")
	}
	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString(crlf)
}
