package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AssignmentStatus represents the grading lifecycle of an assignment.
type AssignmentStatus string

// Assignment lifecycle states. Passed and Failed are terminal.
const (
	AssignmentStatusCreated   AssignmentStatus = "CREATED"
	AssignmentStatusSubmitted AssignmentStatus = "SUBMITTED"
	AssignmentStatusPassed    AssignmentStatus = "PASSED"
	AssignmentStatusFailed    AssignmentStatus = "FAILED"
)

// PassingGrade is the inclusive lower bound of a passing grade.
const PassingGrade = 60

// IsTerminal reports whether no lifecycle transition leaves the status.
func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentStatusPassed || s == AssignmentStatusFailed
}

// StatusForGrade maps a grade to Passed or Failed.
func StatusForGrade(grade int) AssignmentStatus {
	if grade >= PassingGrade {
		return AssignmentStatusPassed
	}
	return AssignmentStatusFailed
}

// Assignment is a gradable unit of work. Submit and Evaluate overwrite
// prior state; callers wanting a strict state machine check CanSubmit and
// CanEvaluate first.
type Assignment struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	title     string
	status    AssignmentStatus
	submitter *Student
	grade     *int
}

// NewAssignment constructs an assignment in the Created state.
func NewAssignment(title string) *Assignment {
	return &Assignment{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		title:     title,
		status:    AssignmentStatusCreated,
	}
}

// Title returns the assignment title.
func (a *Assignment) Title() string { return a.title }

// Status returns the current lifecycle status.
func (a *Assignment) Status() AssignmentStatus { return a.status }

// SubmittedBy returns the submitting student, if any.
func (a *Assignment) SubmittedBy() (*Student, bool) {
	return a.submitter, a.submitter != nil
}

// Grade returns the evaluated grade, if any.
func (a *Assignment) Grade() (int, bool) {
	if a.grade == nil {
		return 0, false
	}
	return *a.grade, true
}

// Submit records s as the submitter and moves the assignment to Submitted.
func (a *Assignment) Submit(s *Student) Notification {
	a.submitter = s
	a.status = AssignmentStatusSubmitted
	a.grade = nil
	return newNotification(NotificationAssignmentSubmit, fmt.Sprintf("assignment %q submitted by %s", a.title, s.Name))
}

// Evaluate stores grade and sets Passed or Failed. The grade is not range checked.
func (a *Assignment) Evaluate(grade int) Notification {
	g := grade
	a.grade = &g
	a.status = StatusForGrade(grade)
	return newNotification(NotificationAssignmentGraded, fmt.Sprintf("assignment %q graded %d points", a.title, grade))
}

// CanSubmit reports whether Submit is a forward transition.
func (a *Assignment) CanSubmit() bool {
	return !a.status.IsTerminal()
}

// CanEvaluate reports whether Evaluate is a forward transition.
func (a *Assignment) CanEvaluate() bool {
	return a.status == AssignmentStatusSubmitted
}
