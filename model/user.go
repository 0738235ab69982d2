package model

import (
	"time"
)

// SubscriptionTier represents the subscription level of a user
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierStudent SubscriptionTier = "student"
	TierPro     SubscriptionTier = "pro"
)

// IsValid checks whether the tier is one of the known subscription levels
func (t SubscriptionTier) IsValid() bool {
	switch t {
	case TierFree, TierStudent, TierPro:
		return true
	}
	return false
}

// UserStats holds aggregate learning statistics for a user
type UserStats struct {
	CoursesCompleted int     `json:"courses_completed"`
	AvgScore         float64 `json:"avg_score"`
	TotalXP          int     `json:"total_xp"`
	Streak           int     `json:"streak"`
}

// Enrollment ties a user to a catalog course with progress and an optional due date.
// At most one entry per course id exists in a user's ledger.
type Enrollment struct {
	CourseID string     `json:"course_id"`
	Progress int        `json:"progress"` // 0 to 100
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// User represents a signed-in learner. The record is owned by the session
// service for the lifetime of one session and persisted as a whole.
type User struct {
	ID       string           `json:"id"`
	Email    string           `json:"email"`
	Name     string           `json:"name"`
	Tier     SubscriptionTier `json:"tier"`
	Enrolled []Enrollment     `json:"enrolled"`
	Stats    UserStats        `json:"stats"`
}

// AuthSession is the persisted session record: the user plus an opaque token
type AuthSession struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Clone returns a deep copy of the user so callers can mutate a candidate
// record without touching the committed one
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	next := *u
	next.Enrolled = make([]Enrollment, len(u.Enrolled))
	for i, e := range u.Enrolled {
		next.Enrolled[i] = e
		if e.DueDate != nil {
			due := *e.DueDate
			next.Enrolled[i].DueDate = &due
		}
	}
	return &next
}

// Enrollment returns the ledger entry for a course, if present
func (u *User) Enrollment(courseID string) (*Enrollment, bool) {
	for i := range u.Enrolled {
		if u.Enrolled[i].CourseID == courseID {
			return &u.Enrolled[i], true
		}
	}
	return nil, false
}

// IsEnrolled reports whether the user has a ledger entry for the course
func (u *User) IsEnrolled(courseID string) bool {
	_, ok := u.Enrollment(courseID)
	return ok
}

// Enroll inserts a ledger entry with zero progress. Enrolling twice is a
// no-op; the ledger never holds two entries for the same course.
// Returns true if a new entry was inserted.
func (u *User) Enroll(courseID string) bool {
	if u.IsEnrolled(courseID) {
		return false
	}
	u.Enrolled = append(u.Enrolled, Enrollment{CourseID: courseID, Progress: 0})
	return true
}

// Unenroll removes the ledger entry for the course if present.
// Returns true if an entry was removed.
func (u *User) Unenroll(courseID string) bool {
	for i := range u.Enrolled {
		if u.Enrolled[i].CourseID == courseID {
			u.Enrolled = append(u.Enrolled[:i], u.Enrolled[i+1:]...)
			return true
		}
	}
	return false
}

// SetProgress sets the progress for an enrolled course, clamped to [0,100]
func (u *User) SetProgress(courseID string, value int) error {
	entry, ok := u.Enrollment(courseID)
	if !ok {
		return ErrNotEnrolled
	}
	entry.Progress = ClampProgress(value)
	return nil
}

// SetDueDate sets the due date for an enrolled course. Setting a due date on
// a course the user is not enrolled in is rejected rather than dropped.
func (u *User) SetDueDate(courseID string, due *time.Time) error {
	entry, ok := u.Enrollment(courseID)
	if !ok {
		return ErrNotEnrolled
	}
	entry.DueDate = due
	return nil
}

// ClampProgress clamps a progress value to the [0,100] range
func ClampProgress(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
