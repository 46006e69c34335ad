package ics

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// DecodeStrict reads a standards-conforming calendar stream, including
// folded lines and property parameters, into the same shape Decode returns.
// Unlike Decode it fails on text that is not a well-formed calendar.
func DecodeStrict(r io.Reader) ([]ParsedEvent, error) {
	dec := ical.NewDecoder(r)
	events := []ParsedEvent{}
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}
		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			events = append(events, parseComponent(comp))
		}
	}
	return events, nil
}

func parseComponent(comp *ical.Component) ParsedEvent {
	ev := ParsedEvent{Raw: renderComponent(comp)}
	if prop := comp.Props.Get(ical.PropUID); prop != nil {
		ev.UID = prop.Value
	}
	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		ev.Summary = stripMarker(textValue(prop))
	}
	if prop := comp.Props.Get(ical.PropDescription); prop != nil {
		ev.Description = textValue(prop)
	}
	if prop := comp.Props.Get(ical.PropCategories); prop != nil {
		ev.Category = prop.Value
	}
	if prop := comp.Props.Get(ical.PropDateTimeStart); prop != nil {
		if t, err := prop.DateTime(time.UTC); err == nil {
			t = t.UTC()
			ev.Date = &t
		}
	}
	return ev
}

func textValue(prop *ical.Prop) string {
	s, err := prop.Text()
	if err != nil {
		return prop.Value
	}
	return s
}

// renderComponent writes the event's properties back out as unfolded lines
// so strict imports keep a readable copy of their source.
func renderComponent(comp *ical.Component) string {
	names := make([]string, 0, len(comp.Props))
	for name := range comp.Props {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	writeLine(&b, beginEvent)
	for _, name := range names {
		for _, prop := range comp.Props[name] {
			writeLine(&b, name+":"+prop.Value)
		}
	}
	b.WriteString(endEvent)
	return b.String()
}
