package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole tags the variant of a registered party.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

// ErrEmptyName is returned when an identity is constructed without a name.
var ErrEmptyName = errors.New("user name cannot be empty")

// User is the identity shared by every role. It is immutable after construction.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUser(name, email string, role UserRole) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrEmptyName
	}
	return User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.TrimSpace(email),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Register confirms the registration. It has no effect on the user.
func (u User) Register() Notification {
	return newNotification(NotificationUserRegistered, fmt.Sprintf("user %s registered", u.Name))
}

// Login returns the role specific login confirmation.
func (u User) Login() Notification {
	var who string
	switch u.Role {
	case RoleStudent:
		who = "student"
	case RoleTeacher:
		who = "teacher"
	case RoleAdmin:
		who = "administrator"
	default:
		who = "user"
	}
	return newNotification(NotificationUserLoggedIn, fmt.Sprintf("%s %s logged in", who, u.Name))
}

// Student is a learner. Courses and assignments are only mutated through its methods.
type Student struct {
	User

	courses     []*Course
	assignments []*Assignment
}

// NewStudent constructs a Student.
func NewStudent(name, email string) (*Student, error) {
	u, err := newUser(name, email, RoleStudent)
	if err != nil {
		return nil, err
	}
	return &Student{User: u}, nil
}

// EnrollCourse links the student and the course on both sides.
func (s *Student) EnrollCourse(c *Course) Notification {
	s.courses = append(s.courses, c)
	return c.EnrollStudent(s)
}

// SubmitAssignment records the assignment as authored by the student and submits it.
func (s *Student) SubmitAssignment(a *Assignment) Notification {
	s.assignments = append(s.assignments, a)
	return a.Submit(s)
}

// Courses returns the courses the student enrolled in, in enrollment order.
func (s *Student) Courses() []*Course {
	return append([]*Course(nil), s.courses...)
}

// Assignments returns the assignments the student submitted, in submission order.
func (s *Student) Assignments() []*Assignment {
	return append([]*Assignment(nil), s.assignments...)
}

// Teacher owns the courses it creates and evaluates assignments.
type Teacher struct {
	User

	courses []*Course
}

// NewTeacher constructs a Teacher.
func NewTeacher(name, email string) (*Teacher, error) {
	u, err := newUser(name, email, RoleTeacher)
	if err != nil {
		return nil, err
	}
	return &Teacher{User: u}, nil
}

// CreateCourse creates a course owned by the teacher.
func (t *Teacher) CreateCourse(name string) *Course {
	c := NewCourse(name, t.ID)
	t.courses = append(t.courses, c)
	return c
}

// EvaluateAssignment grades a. Ownership of any course is not checked;
// assignments are not linked to courses.
func (t *Teacher) EvaluateAssignment(a *Assignment, grade int) Notification {
	return a.Evaluate(grade)
}

// Courses returns the courses created by the teacher.
func (t *Teacher) Courses() []*Course {
	return append([]*Course(nil), t.courses...)
}

// Owns reports whether c was created by the teacher.
func (t *Teacher) Owns(c *Course) bool {
	return c != nil && c.OwnerID == t.ID
}

// Administrator has a read-only reporting view.
type Administrator struct {
	User
}

// NewAdministrator constructs an Administrator.
func NewAdministrator(name, email string) (*Administrator, error) {
	u, err := newUser(name, email, RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &Administrator{User: u}, nil
}

// GenerateReport produces the course report. Materials and grades are not aggregated.
func (a *Administrator) GenerateReport(c *Course) Notification {
	return newNotification(NotificationReportGenerated, fmt.Sprintf("report for course: %s", c))
}
