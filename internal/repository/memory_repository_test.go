package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-core/internal/models"
)

func TestMemoryRepositoryUsers(t *testing.T) {
	repo := NewMemoryRepository()
	s, _ := models.NewStudent("Maria", "")
	tc, _ := models.NewTeacher("Ivan", "")
	a, _ := models.NewAdministrator("Olena", "")
	repo.SaveStudent(s)
	repo.SaveTeacher(tc)
	repo.SaveAdministrator(a)

	gotS, err := repo.FindStudent(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, gotS)

	gotT, err := repo.FindTeacher(tc.ID)
	require.NoError(t, err)
	assert.Same(t, tc, gotT)

	gotA, err := repo.FindAdministrator(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, gotA)

	u, err := repo.FindUser(tc.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, u.Role)

	_, err = repo.FindStudent(tc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindUser("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryCoursesAndAssignments(t *testing.T) {
	repo := NewMemoryRepository()
	tc, _ := models.NewTeacher("Ivan", "")
	first := tc.CreateCourse("Basics")
	second := tc.CreateCourse("Advanced")
	repo.SaveCourse(second)
	repo.SaveCourse(first)

	got, err := repo.FindCourse(first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Len(t, repo.ListCourses(), 2)

	a := models.NewAssignment("HW1")
	repo.SaveAssignment(a)
	gotA, err := repo.FindAssignment(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, gotA)

	_, err = repo.FindCourse("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.FindAssignment("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
