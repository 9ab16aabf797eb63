package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-core/internal/models"
	"github.com/noah-isme/classroom-core/internal/repository"
	"github.com/noah-isme/classroom-core/pkg/export"
	"github.com/noah-isme/classroom-core/pkg/validation"
)

type classroomFixture struct {
	repo        *repository.MemoryRepository
	metrics     *MetricsService
	courses     *CourseService
	enrollments *EnrollmentService
	assignments *AssignmentService
	reports     *ReportService

	teacher *models.Teacher
	student *models.Student
	admin   *models.Administrator
	course  *models.Course
}

func newClassroomFixture(t *testing.T, policy Policy) *classroomFixture {
	t.Helper()
	repo := repository.NewMemoryRepository()
	metrics := NewMetricsService()
	locks := NewLocks()
	v := validation.New()
	logger := zap.NewNop()

	teacher, err := models.NewTeacher("Ivan Petrov", "ivan@school.test")
	require.NoError(t, err)
	student, err := models.NewStudent("Maria Ivanova", "maria@school.test")
	require.NoError(t, err)
	admin, err := models.NewAdministrator("Olena Sydorova", "olena@school.test")
	require.NoError(t, err)
	repo.SaveTeacher(teacher)
	repo.SaveStudent(student)
	repo.SaveAdministrator(admin)

	course := teacher.CreateCourse("Java Basics")
	repo.SaveCourse(course)

	return &classroomFixture{
		repo:        repo,
		metrics:     metrics,
		courses:     NewCourseService(repo, policy, locks, v, metrics, logger),
		enrollments: NewEnrollmentService(repo, policy, locks, v, metrics, logger),
		assignments: NewAssignmentService(repo, policy, locks, v, metrics, logger),
		reports:     NewReportService(repo, locks, v, metrics, logger, export.NewCSVExporter(), export.NewPDFExporter()),
		teacher:     teacher,
		student:     student,
		admin:       admin,
		course:      course,
	}
}
