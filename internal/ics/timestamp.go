package ics

import (
	"regexp"
	"strings"
	"time"
)

const timestampLayout = "20060102T150405Z"

var timestampPattern = regexp.MustCompile(`^\d{8}T\d{6}Z?$`)

// FormatTimestamp renders t in the compact UTC form, e.g. 20240301T100000Z.
// Sub-second precision is dropped.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timestampLayout)
}

// ParseTimestamp reads the compact form. A missing trailing Z is read as UTC.
// Any other shape, or a value that is not a real calendar instant, reports
// ok == false.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if !timestampPattern.MatchString(s) {
		return time.Time{}, false
	}
	if !strings.HasSuffix(s, "Z") {
		s += "Z"
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
