package ics

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), "20240301T100000Z"},
		{time.Date(2024, 3, 1, 5, 0, 0, 0, est), "20240301T100000Z"},
		{time.Date(2023, 12, 31, 23, 59, 59, 999_000_000, time.UTC), "20231231T235959Z"},
		{time.Date(2024, 2, 29, 21, 30, 0, 0, est), "20240301T023000Z"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	got, ok := ParseTimestamp("20240301T100000Z")
	if !ok {
		t.Fatal("expected ok for a valid timestamp")
	}
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
}

func TestParseTimestampWithoutZ(t *testing.T) {
	got, ok := ParseTimestamp("20240301T100000")
	if !ok {
		t.Fatal("expected ok without trailing Z")
	}
	if want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ParseTimestamp = %v, want %v", got, want)
	}
}

func TestParseTimestampRejects(t *testing.T) {
	inputs := []string{
		"",
		"not-a-date",
		"20240301",
		"2024-03-01T10:00:00Z",
		"20240301T1000Z",
		"20240301X100000Z",
		"20240301T100000ZZ",
		"20241301T100000Z",
		"20240230T100000Z",
		"20240301T250000Z",
	}

	for _, in := range inputs {
		if got, ok := ParseTimestamp(in); ok {
			t.Errorf("ParseTimestamp(%q) = %v, want not ok", in, got)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2030, 6, 15, 8, 7, 6, 123_456_789, time.UTC),
		time.Date(2024, 7, 4, 12, 0, 0, 0, time.FixedZone("PDT", -7*60*60)),
	}

	for _, in := range instants {
		got, ok := ParseTimestamp(FormatTimestamp(in))
		if !ok {
			t.Fatalf("round trip of %v failed to parse", in)
		}
		if want := in.Truncate(time.Second); !got.Equal(want) {
			t.Errorf("round trip of %v = %v, want %v", in, got, want)
		}
	}
}
