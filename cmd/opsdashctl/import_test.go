package main

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dukerupert/opsdash/internal/ics"
	"github.com/dukerupert/opsdash/internal/importer"
	"github.com/dukerupert/opsdash/internal/model"
)

func TestParseIndexList(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"  ", nil, false},
		{"0", []int{0}, false},
		{"1, 3,4", []int{1, 3, 4}, false},
		{"1,x", nil, true},
	}
	for _, tt := range tests {
		got, err := parseIndexList(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndexList(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseIndexList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	sess := &importer.Session{
		Assignments: importer.NewAssignments([]ics.ParsedEvent{{Summary: "A"}, {Summary: "B"}, {Summary: "C"}}),
		Projects:    []model.Project{{ID: 2, Name: "Ops"}},
	}

	if err := applyFlags(sess, 2, []int{1}, []int{2}); err != nil {
		t.Fatalf("apply flags: %v", err)
	}
	for i, a := range sess.Assignments {
		if a.ProjectID == nil || *a.ProjectID != 2 {
			t.Errorf("assignment %d project = %v, want 2", i, a.ProjectID)
		}
	}
	if !sess.Assignments[1].Skip {
		t.Error("assignment 1 should be skipped")
	}
	if sess.Assignments[2].Kind != importer.KindTask {
		t.Errorf("assignment 2 kind = %q, want task", sess.Assignments[2].Kind)
	}

	if err := applyFlags(sess, 9, nil, nil); !errors.Is(err, importer.ErrUnknownProject) {
		t.Errorf("unknown project err = %v, want ErrUnknownProject", err)
	}
	if err := applyFlags(sess, 2, []int{5}, nil); !errors.Is(err, importer.ErrIndexOutOfRange) {
		t.Errorf("bad skip index err = %v, want ErrIndexOutOfRange", err)
	}
}
