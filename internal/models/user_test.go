package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserRejectsEmptyName(t *testing.T) {
	_, err := NewStudent("   ", "s@school.test")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = NewTeacher("", "t@school.test")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = NewAdministrator("", "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestNewUserKeepsUnvalidatedEmail(t *testing.T) {
	s, err := NewStudent(" Maria ", "not-an-email")
	require.NoError(t, err)
	assert.Equal(t, "Maria", s.Name)
	assert.Equal(t, "not-an-email", s.Email)
	assert.Equal(t, RoleStudent, s.Role)
	assert.NotEmpty(t, s.ID)
}

func TestRegisterIsIdempotent(t *testing.T) {
	s, err := NewStudent("Maria", "maria@school.test")
	require.NoError(t, err)
	before := s.User

	first := s.Register()
	second := s.Register()

	assert.Equal(t, NotificationUserRegistered, first.Kind)
	assert.Equal(t, "user Maria registered", first.Message)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, before, s.User)
}

func TestLoginPerRole(t *testing.T) {
	s, _ := NewStudent("Maria", "")
	tc, _ := NewTeacher("Ivan", "")
	a, _ := NewAdministrator("Olena", "")

	cases := []struct {
		name string
		got  Notification
		want string
	}{
		{"student", s.Login(), "student Maria logged in"},
		{"teacher", tc.Login(), "teacher Ivan logged in"},
		{"admin", a.Login(), "administrator Olena logged in"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, NotificationUserLoggedIn, tt.got.Kind)
			assert.Equal(t, tt.want, tt.got.Message)
		})
	}
}

func TestTeacherCreateCourseRecordsOwnership(t *testing.T) {
	tc, _ := NewTeacher("Ivan", "")
	other, _ := NewTeacher("Petro", "")

	c := tc.CreateCourse("Basics")
	require.NotNil(t, c)
	assert.Equal(t, "Basics", c.Name)
	assert.Equal(t, tc.ID, c.OwnerID)
	assert.Equal(t, []*Course{c}, tc.Courses())
	assert.True(t, tc.Owns(c))
	assert.False(t, other.Owns(c))
	assert.Empty(t, c.Materials())
	assert.Empty(t, c.Students())
}

func TestAdministratorReportIsSuperficial(t *testing.T) {
	tc, _ := NewTeacher("Ivan", "")
	a, _ := NewAdministrator("Olena", "")
	c := tc.CreateCourse("Basics")
	c.AddMaterial("Intro", MaterialOptions{})

	n := a.GenerateReport(c)
	assert.Equal(t, NotificationReportGenerated, n.Kind)
	assert.Equal(t, "report for course: Basics", n.Message)
}
