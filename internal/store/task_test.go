package store

import (
	"testing"
	"time"

	"github.com/dukerupert/opsdash/internal/model"
)

func setupTaskTest(t *testing.T) (*TaskStore, *model.Project) {
	t.Helper()
	db := openTestDB(t)
	p, err := NewProjectStore(db).Create("Ops", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return NewTaskStore(db), p
}

func TestTaskCreateKeepsDateOnly(t *testing.T) {
	s, p := setupTaskTest(t)

	due := time.Date(2024, 4, 15, 17, 45, 0, 0, time.UTC)
	task, err := s.Create(p.ID, "Send invoice", "net 30", &due, model.PriorityHigh, "Dana", "")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.DueDate == nil {
		t.Fatal("due date should be set")
	}
	if want := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC); !task.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v", task.DueDate, want)
	}
	if task.Status != model.StatusTodo {
		t.Errorf("status = %q, want default %q", task.Status, model.StatusTodo)
	}
	if task.Priority != model.PriorityHigh {
		t.Errorf("priority = %q, want %q", task.Priority, model.PriorityHigh)
	}
	if task.Assignee != "Dana" {
		t.Errorf("assignee = %q, want %q", task.Assignee, "Dana")
	}
}

func TestTaskCreateDefaults(t *testing.T) {
	s, p := setupTaskTest(t)

	task, err := s.Create(p.ID, "Open question", "", nil, "", "", "")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("due date = %v, want nil", task.DueDate)
	}
	if task.Priority != model.PriorityMedium {
		t.Errorf("priority = %q, want %q", task.Priority, model.PriorityMedium)
	}
}

func TestTaskCreateRejectsUnknownPriority(t *testing.T) {
	s, p := setupTaskTest(t)

	if _, err := s.Create(p.ID, "Bad", "", nil, "whenever", "", ""); err == nil {
		t.Error("expected check constraint error for unknown priority")
	}
}

func TestTaskUpdateStatus(t *testing.T) {
	s, p := setupTaskTest(t)

	task, _ := s.Create(p.ID, "Ship", "", nil, "", "", "")
	updated, err := s.UpdateStatus(task.ID, model.StatusDone)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if !updated.IsDone() {
		t.Errorf("status = %q, want done", updated.Status)
	}
}

func TestTaskListOrder(t *testing.T) {
	s, p := setupTaskTest(t)

	d1 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.Create(p.ID, "No date", "", nil, "", "", "")
	s.Create(p.ID, "May", "", &d2, "", "", "")
	s.Create(p.ID, "April", "", &d1, "", "", "")

	tasks, err := s.ListByProject(p.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	want := []string{"April", "May", "No date"}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(tasks), len(want))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Title, title)
		}
	}
}
