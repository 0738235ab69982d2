package model

import (
	"testing"
	"time"
)

func TestEnrollIsIdempotent(t *testing.T) {
	user := &User{ID: "u1", Enrolled: []Enrollment{}}

	if !user.Enroll("algebra-foundations") {
		t.Fatal("expected first enroll to insert an entry")
	}
	if user.Enroll("algebra-foundations") {
		t.Error("expected second enroll to be a no-op")
	}
	if len(user.Enrolled) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(user.Enrolled))
	}
	if user.Enrolled[0].Progress != 0 {
		t.Errorf("expected zero initial progress, got %d", user.Enrolled[0].Progress)
	}
}

func TestUnenrollRemovesEntry(t *testing.T) {
	user := &User{Enrolled: []Enrollment{
		{CourseID: "a"},
		{CourseID: "b"},
	}}

	if !user.Unenroll("a") {
		t.Fatal("expected unenroll to remove the entry")
	}
	if user.Unenroll("a") {
		t.Error("expected second unenroll to be a no-op")
	}
	if user.IsEnrolled("a") {
		t.Error("entry still present after unenroll")
	}
	if !user.IsEnrolled("b") {
		t.Error("unrelated entry removed")
	}
}

func TestSetProgressClampsAndRejectsUnknown(t *testing.T) {
	user := &User{Enrolled: []Enrollment{{CourseID: "a"}}}

	if err := user.SetProgress("a", 150); err != nil {
		t.Fatalf("SetProgress returned error: %v", err)
	}
	if got := user.Enrolled[0].Progress; got != 100 {
		t.Errorf("expected progress clamped to 100, got %d", got)
	}

	if err := user.SetProgress("a", -5); err != nil {
		t.Fatalf("SetProgress returned error: %v", err)
	}
	if got := user.Enrolled[0].Progress; got != 0 {
		t.Errorf("expected progress clamped to 0, got %d", got)
	}

	if err := user.SetProgress("missing", 10); err != ErrNotEnrolled {
		t.Errorf("expected ErrNotEnrolled, got %v", err)
	}
}

func TestSetDueDateRequiresEnrollment(t *testing.T) {
	user := &User{Enrolled: []Enrollment{{CourseID: "a"}}}
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	if err := user.SetDueDate("missing", &due); err != ErrNotEnrolled {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}

	if err := user.SetDueDate("a", &due); err != nil {
		t.Fatalf("SetDueDate returned error: %v", err)
	}
	if user.Enrolled[0].DueDate == nil || !user.Enrolled[0].DueDate.Equal(due) {
		t.Error("due date not recorded")
	}

	if err := user.SetDueDate("a", nil); err != nil {
		t.Fatalf("SetDueDate returned error: %v", err)
	}
	if user.Enrolled[0].DueDate != nil {
		t.Error("expected due date cleared")
	}
}

func TestCloneIsDeep(t *testing.T) {
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	user := &User{
		ID:       "u1",
		Enrolled: []Enrollment{{CourseID: "a", Progress: 40, DueDate: &due}},
	}

	clone := user.Clone()
	clone.Enrolled[0].Progress = 90
	*clone.Enrolled[0].DueDate = due.AddDate(0, 1, 0)

	if user.Enrolled[0].Progress != 40 {
		t.Error("clone shares the enrollment slice with the original")
	}
	if !user.Enrolled[0].DueDate.Equal(due) {
		t.Error("clone shares the due date pointer with the original")
	}
}
