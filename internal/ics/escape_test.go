package ics

import (
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"Align,on scope", `Align\,on scope`},
		{"a;b", `a\;b`},
		{"line one\nline two", `line one\nline two`},
		{`C:\temp`, `C:\\temp`},
		{`a\;b`, `a\\\;b`},
	}

	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{`Align\,on scope`, "Align,on scope"},
		{`a\;b`, "a;b"},
		{`first\nsecond\nthird`, "first\nsecond\nthird"},
		{`C:\\temp`, `C:\\temp`},
	}

	for _, tt := range tests {
		if got := Unescape(tt.in); got != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeRoundTripContent(t *testing.T) {
	inputs := []string{
		"Budget, Q3; review\nbring numbers",
		",,;;\n\n",
		"no specials at all",
		"trailing comma,",
	}

	for _, in := range inputs {
		if got := Unescape(Escape(in)); got != in {
			t.Errorf("Unescape(Escape(%q)) = %q", in, got)
		}
	}
}

func TestEscapeRoundTripDoublesBackslash(t *testing.T) {
	in := "path C:\\docs, v2;\nok"

	got := Unescape(Escape(in))

	want := "path C:\\\\docs, v2;\nok"
	if got != want {
		t.Fatalf("round trip = %q, want %q", got, want)
	}
	if strings.Count(got, ",") != 1 || strings.Count(got, ";") != 1 || strings.Count(got, "\n") != 1 {
		t.Errorf("content characters not preserved: %q", got)
	}
}
