package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-core/internal/models"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
	"github.com/noah-isme/classroom-core/pkg/validation"
)

type enrollmentStore interface {
	FindStudent(id string) (*models.Student, error)
	FindCourse(id string) (*models.Course, error)
}

// EnrollRequest describes a student joining a course.
type EnrollRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

// EnrollmentService keeps the student and course sides of an enrollment consistent.
type EnrollmentService struct {
	repo      enrollmentStore
	policy    Policy
	locks     *Locks
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentStore, policy Policy, locks *Locks, validate *validation.Validator, metrics *MetricsService, logger *zap.Logger) *EnrollmentService {
	if locks == nil {
		locks = NewLocks()
	}
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, policy: policy, locks: locks, validator: validate, metrics: metrics, logger: logger}
}

// Enroll links the student and the course. Both collections are updated under
// the same critical section.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (models.Notification, error) {
	if err := s.validator.Struct(req, "invalid enrollment payload"); err != nil {
		return models.Notification{}, s.reject(err)
	}
	student, err := s.repo.FindStudent(req.StudentID)
	if err != nil {
		return models.Notification{}, s.reject(lookupError(err, "student"))
	}
	course, err := s.repo.FindCourse(req.CourseID)
	if err != nil {
		return models.Notification{}, s.reject(lookupError(err, "course"))
	}

	release := s.locks.acquire(course.ID, student.ID)
	defer release()

	if s.policy.RejectDuplicateEnrollment && course.IsEnrolled(student) {
		return models.Notification{}, s.reject(appErrors.Clone(appErrors.ErrDuplicateEnrollment, fmt.Sprintf("%s already enrolled in course %s", student.Name, course.Name)))
	}
	n := student.EnrollCourse(course)
	s.metrics.RecordNotifications(n)
	s.logger.Sugar().Infow("student enrolled", "student_id", student.ID, "course_id", course.ID)
	return n, nil
}

// Students returns the students enrolled in a course.
func (s *EnrollmentService) Students(ctx context.Context, courseID string) ([]*models.Student, error) {
	course, err := s.repo.FindCourse(courseID)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	release := s.locks.acquire(course.ID)
	defer release()
	return course.Students(), nil
}

// Courses returns the courses a student enrolled in.
func (s *EnrollmentService) Courses(ctx context.Context, studentID string) ([]*models.Course, error) {
	student, err := s.repo.FindStudent(studentID)
	if err != nil {
		return nil, lookupError(err, "student")
	}
	release := s.locks.acquire(student.ID)
	defer release()
	return student.Courses(), nil
}

func (s *EnrollmentService) reject(err error) error {
	s.metrics.RecordRejection(err)
	return err
}
