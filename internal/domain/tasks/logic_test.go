package tasks

import (
	"testing"
	"time"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestIsOverdueDerivedNotStored(t *testing.T) {
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	// Stored status still says "assigned"; the derived value must win.
	stale := Task{Status: StatusAssigned, DueDate: past}
	if !IsOverdue(stale, now) {
		t.Fatal("expected past-due assigned task to be overdue")
	}

	if IsOverdue(Task{Status: StatusAssigned, DueDate: future}, now) {
		t.Fatal("future task must not be overdue")
	}
	if IsOverdue(Task{Status: StatusCompleted, DueDate: past}, now) {
		t.Fatal("completed task is never overdue")
	}
}

func TestCompletionStatus(t *testing.T) {
	due := now
	early := now.Add(-time.Hour)
	late := now.Add(time.Hour)

	onTime := Task{Status: StatusCompleted, DueDate: due, CompletedDate: &early}
	if got := CompletionStatus(onTime, now); got != CompletionOnTime {
		t.Fatalf("expected on_time, got %s", got)
	}

	lateTask := Task{Status: StatusCompleted, DueDate: due, CompletedDate: &late}
	if got := CompletionStatus(lateTask, late); got != CompletionLate {
		t.Fatalf("expected late, got %s", got)
	}

	overdue := Task{Status: StatusAssigned, DueDate: early}
	if got := CompletionStatus(overdue, now); got != CompletionOverdue {
		t.Fatalf("expected overdue, got %s", got)
	}

	pending := Task{Status: StatusInProgress, DueDate: now.Add(48 * time.Hour)}
	if got := CompletionStatus(pending, now); got != CompletionPending {
		t.Fatalf("expected pending, got %s", got)
	}
}

func TestCompletionStatusExactlyOnDue(t *testing.T) {
	due := now
	task := Task{Status: StatusCompleted, DueDate: due, CompletedDate: &due}
	if got := CompletionStatus(task, now); got != CompletionOnTime {
		t.Fatalf("completion at the due instant counts as on_time, got %s", got)
	}
}
