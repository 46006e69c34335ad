package ics

import (
	"strings"
	"time"
	"unicode"
)

const (
	beginEvent = "BEGIN:VEVENT"
	endEvent   = "END:VEVENT"
)

// ParsedEvent is an event read back from interchange text. Fields missing
// from the source are empty; Date is nil when DTSTART is missing or cannot
// be read.
type ParsedEvent struct {
	UID         string     `json:"uid"`
	Summary     string     `json:"summary"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Raw         string     `json:"raw"`
}

// Decode reads every event block out of text. It never fails: a block with
// unreadable fields still yields an event, and text without any event
// blocks yields an empty slice.
func Decode(text string) []ParsedEvent {
	segments := strings.Split(text, beginEvent)
	events := make([]ParsedEvent, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		events = append(events, decodeBlock(seg))
	}
	return events
}

func decodeBlock(seg string) ParsedEvent {
	body := seg
	raw := beginEvent + seg
	if i := strings.Index(seg, endEvent); i >= 0 {
		body = seg[:i]
		raw = beginEvent + seg[:i+len(endEvent)]
	}
	lines := splitLines(body)

	uid, _ := field(lines, "UID")
	summary, _ := field(lines, "SUMMARY")
	description, _ := field(lines, "DESCRIPTION")
	category, _ := field(lines, "CATEGORIES")

	ev := ParsedEvent{
		UID:         uid,
		Summary:     stripMarker(summary),
		Description: Unescape(description),
		Category:    category,
		Raw:         raw,
	}
	if start, ok := field(lines, "DTSTART"); ok {
		if t, ok := ParseTimestamp(start); ok {
			ev.Date = &t
		}
	}
	return ev
}

func splitLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// field returns the value of the first line carrying the named property.
// Property parameters (NAME;PARAM=x:value) are accepted and ignored.
func field(lines []string, name string) (string, bool) {
	for _, line := range lines {
		if !strings.HasPrefix(line, name) {
			continue
		}
		rest := line[len(name):]
		if rest == "" || (rest[0] != ':' && rest[0] != ';') {
			continue
		}
		_, value, ok := strings.Cut(rest, ":")
		if !ok {
			continue
		}
		return strings.TrimSpace(value), true
	}
	return "", false
}

// stripMarker drops a leading pictograph, such as the markers the encoder
// adds, along with the whitespace after it.
func stripMarker(summary string) string {
	summary = strings.TrimSpace(summary)
	rest := strings.TrimLeftFunc(summary, isPictograph)
	if len(rest) == len(summary) {
		return summary
	}
	return strings.TrimLeftFunc(rest, unicode.IsSpace)
}

func isPictograph(r rune) bool {
	switch {
	case unicode.Is(unicode.So, r):
		return true
	case r == '\u200D', r == '\uFE0F':
		return true
	case r >= 0x1F3FB && r <= 0x1F3FF:
		// skin tone modifiers
		return true
	}
	return false
}
