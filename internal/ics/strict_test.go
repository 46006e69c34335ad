package ics

import (
	"strings"
	"testing"
	"time"
)

func TestDecodeStrictFoldedLines(t *testing.T) {
	doc := crlfJoin(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Other Tool//EN",
		"BEGIN:VEVENT",
		"UID:ext-1@example.com",
		"DTSTAMP:20240101T000000Z",
		"DTSTART:20240301T100000Z",
		"SUMMARY:📅 Quarterly",
		"  review",
		`DESCRIPTION:Agenda\, part one\nPart two`,
		"CATEGORIES:MEETING",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	events, err := DecodeStrict(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode strict: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.UID != "ext-1@example.com" {
		t.Errorf("UID = %q", ev.UID)
	}
	if ev.Summary != "Quarterly review" {
		t.Errorf("Summary = %q, want %q", ev.Summary, "Quarterly review")
	}
	if want := "Agenda, part one\nPart two"; ev.Description != want {
		t.Errorf("Description = %q, want %q", ev.Description, want)
	}
	if ev.Date == nil || !ev.Date.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", ev.Date)
	}
	if ev.Category != CategoryMeeting {
		t.Errorf("Category = %q", ev.Category)
	}
	if !strings.Contains(ev.Raw, "UID:ext-1@example.com") {
		t.Errorf("Raw = %q", ev.Raw)
	}
}

func TestDecodeStrictEmpty(t *testing.T) {
	events, err := DecodeStrict(strings.NewReader(""))
	if err != nil {
		t.Fatalf("decode strict: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("got %d events, want 0", len(events))
	}
}

func TestDecodeStrictRejectsMalformed(t *testing.T) {
	if _, err := DecodeStrict(strings.NewReader("hello world\r\n")); err == nil {
		t.Error("expected an error for text that is not a calendar")
	}
}
