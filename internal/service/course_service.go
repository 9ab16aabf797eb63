package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-core/internal/models"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
	"github.com/noah-isme/classroom-core/pkg/validation"
)

type courseStore interface {
	FindTeacher(id string) (*models.Teacher, error)
	SaveCourse(c *models.Course)
	FindCourse(id string) (*models.Course, error)
	ListCourses() []*models.Course
}

// CreateCourseRequest describes course creation by a teacher.
type CreateCourseRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	Name      string `json:"name"`
}

// AddMaterialRequest appends content to a course catalog.
// TeacherID is only required when course ownership is enforced.
type AddMaterialRequest struct {
	TeacherID string `json:"teacher_id"`
	CourseID  string `json:"course_id" validate:"required"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

// RemoveMaterialRequest removes content from a course catalog.
type RemoveMaterialRequest struct {
	TeacherID string `json:"teacher_id"`
	CourseID  string `json:"course_id" validate:"required"`
	Content   string `json:"content"`
}

// CourseService manages course creation and material catalogs.
type CourseService struct {
	repo      courseStore
	policy    Policy
	locks     *Locks
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseStore, policy Policy, locks *Locks, validate *validation.Validator, metrics *MetricsService, logger *zap.Logger) *CourseService {
	if locks == nil {
		locks = NewLocks()
	}
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, policy: policy, locks: locks, validator: validate, metrics: metrics, logger: logger}
}

// Create builds a course owned by the requesting teacher.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req, "invalid course payload"); err != nil {
		return nil, s.reject(err)
	}
	teacher, err := s.repo.FindTeacher(req.TeacherID)
	if err != nil {
		return nil, s.reject(lookupError(err, "teacher"))
	}

	release := s.locks.acquire(teacher.ID)
	course := teacher.CreateCourse(req.Name)
	release()

	s.repo.SaveCourse(course)
	s.logger.Sugar().Infow("course created", "course_id", course.ID, "teacher_id", teacher.ID)
	return course, nil
}

// Get returns a course by ID.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindCourse(id)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	return course, nil
}

// List returns every course in creation order.
func (s *CourseService) List(ctx context.Context) []*models.Course {
	return s.repo.ListCourses()
}

// Materials returns a snapshot of the course catalog.
func (s *CourseService) Materials(ctx context.Context, courseID string) ([]string, error) {
	course, err := s.repo.FindCourse(courseID)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	release := s.locks.acquire(course.ID)
	defer release()
	return course.Materials(), nil
}

// AddMaterial appends content to the course and returns the emitted notifications.
func (s *CourseService) AddMaterial(ctx context.Context, req AddMaterialRequest) ([]models.Notification, error) {
	if err := s.validator.Struct(req, "invalid material payload"); err != nil {
		return nil, s.reject(err)
	}
	course, err := s.authorize(req.TeacherID, req.CourseID)
	if err != nil {
		return nil, s.reject(err)
	}

	release := s.locks.acquire(course.ID)
	ns := course.AddMaterial(req.Content, models.MaterialOptions{Important: req.Important})
	release()

	s.metrics.RecordNotifications(ns...)
	s.logger.Sugar().Infow("material added", "course_id", course.ID, "important", req.Important)
	return ns, nil
}

// RemoveMaterial removes the first matching entry. A missing entry is ignored
// unless the policy asks for strict removal.
func (s *CourseService) RemoveMaterial(ctx context.Context, req RemoveMaterialRequest) (models.Notification, error) {
	if err := s.validator.Struct(req, "invalid material payload"); err != nil {
		return models.Notification{}, s.reject(err)
	}
	course, err := s.authorize(req.TeacherID, req.CourseID)
	if err != nil {
		return models.Notification{}, s.reject(err)
	}

	release := s.locks.acquire(course.ID)
	defer release()

	if s.policy.StrictMaterialRemoval && !course.HasMaterial(req.Content) {
		return models.Notification{}, s.reject(appErrors.Clone(appErrors.ErrMaterialNotFound, fmt.Sprintf("material %q not found in course %s", req.Content, course.Name)))
	}
	n, removed := course.RemoveMaterial(req.Content)
	if !removed {
		s.logger.Sugar().Debugw("material not present, nothing removed", "course_id", course.ID)
	}
	s.metrics.RecordNotifications(n)
	return n, nil
}

// authorize loads the course and, when ownership is enforced, checks the teacher created it.
func (s *CourseService) authorize(teacherID, courseID string) (*models.Course, error) {
	course, err := s.repo.FindCourse(courseID)
	if err != nil {
		return nil, lookupError(err, "course")
	}
	if teacherID == "" {
		if s.policy.RequireCourseOwnership {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "teacher required to edit course materials")
		}
		return course, nil
	}
	teacher, err := s.repo.FindTeacher(teacherID)
	if err != nil {
		return nil, lookupError(err, "teacher")
	}
	if s.policy.RequireCourseOwnership && !teacher.Owns(course) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "teacher does not own course")
	}
	return course, nil
}

func (s *CourseService) reject(err error) error {
	s.metrics.RecordRejection(err)
	return err
}
