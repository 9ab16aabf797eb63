package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-core/internal/models"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
	"github.com/noah-isme/classroom-core/pkg/validation"
)

type assignmentStore interface {
	SaveAssignment(a *models.Assignment)
	FindAssignment(id string) (*models.Assignment, error)
	FindStudent(id string) (*models.Student, error)
	FindTeacher(id string) (*models.Teacher, error)
}

// CreateAssignmentRequest describes a new assignment.
type CreateAssignmentRequest struct {
	Title string `json:"title"`
}

// SubmitAssignmentRequest describes a student submitting work.
type SubmitAssignmentRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	StudentID    string `json:"student_id" validate:"required"`
}

// EvaluateAssignmentRequest describes a teacher grading work.
type EvaluateAssignmentRequest struct {
	TeacherID    string `json:"teacher_id" validate:"required"`
	AssignmentID string `json:"assignment_id" validate:"required"`
	Grade        int    `json:"grade"`
}

// AssignmentService drives the submission and grading lifecycle.
type AssignmentService struct {
	repo      assignmentStore
	policy    Policy
	locks     *Locks
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewAssignmentService constructs AssignmentService.
func NewAssignmentService(repo assignmentStore, policy Policy, locks *Locks, validate *validation.Validator, metrics *MetricsService, logger *zap.Logger) *AssignmentService {
	if locks == nil {
		locks = NewLocks()
	}
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, policy: policy, locks: locks, validator: validate, metrics: metrics, logger: logger}
}

// Create builds an assignment in the Created state.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req, "invalid assignment payload"); err != nil {
		return nil, s.reject(err)
	}
	a := models.NewAssignment(req.Title)
	s.repo.SaveAssignment(a)
	s.logger.Sugar().Infow("assignment created", "assignment_id", a.ID)
	return a, nil
}

// Get returns an assignment by ID.
func (s *AssignmentService) Get(ctx context.Context, id string) (*models.Assignment, error) {
	a, err := s.repo.FindAssignment(id)
	if err != nil {
		return nil, lookupError(err, "assignment")
	}
	return a, nil
}

// Submit records the student as author and moves the assignment to Submitted.
func (s *AssignmentService) Submit(ctx context.Context, req SubmitAssignmentRequest) (models.Notification, error) {
	if err := s.validator.Struct(req, "invalid submission payload"); err != nil {
		return models.Notification{}, s.reject(err)
	}
	a, err := s.repo.FindAssignment(req.AssignmentID)
	if err != nil {
		return models.Notification{}, s.reject(lookupError(err, "assignment"))
	}
	student, err := s.repo.FindStudent(req.StudentID)
	if err != nil {
		return models.Notification{}, s.reject(lookupError(err, "student"))
	}

	release := s.locks.acquire(a.ID, student.ID)
	defer release()

	if s.policy.StrictTransitions && !a.CanSubmit() {
		return models.Notification{}, s.reject(appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("assignment %q already %s", a.Title(), a.Status())))
	}
	n := student.SubmitAssignment(a)
	s.metrics.RecordNotifications(n)
	s.logger.Sugar().Infow("assignment submitted", "assignment_id", a.ID, "student_id", student.ID)
	return n, nil
}

// Evaluate grades the assignment. The teacher's ownership of any course is not
// checked because assignments are not linked to courses.
func (s *AssignmentService) Evaluate(ctx context.Context, req EvaluateAssignmentRequest) (models.Notification, error) {
	if err := s.validator.Struct(req, "invalid evaluation payload"); err != nil {
		return models.Notification{}, s.reject(err)
	}
	if err := s.policy.checkGrade(req.Grade); err != nil {
		return models.Notification{}, s.reject(err)
	}
	teacher, err := s.repo.FindTeacher(req.TeacherID)
	if err != nil {
		return models.Notification{}, s.reject(lookupError(err, "teacher"))
	}
	a, err := s.repo.FindAssignment(req.AssignmentID)
	if err != nil {
		return models.Notification{}, s.reject(lookupError(err, "assignment"))
	}

	release := s.locks.acquire(a.ID)
	defer release()

	if s.policy.StrictTransitions && !a.CanEvaluate() {
		return models.Notification{}, s.reject(appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("assignment %q is %s, expected %s", a.Title(), a.Status(), models.AssignmentStatusSubmitted)))
	}
	n := teacher.EvaluateAssignment(a, req.Grade)
	s.metrics.RecordNotifications(n)
	s.metrics.RecordEvaluation(a.Status())
	s.logger.Sugar().Infow("assignment evaluated", "assignment_id", a.ID, "teacher_id", teacher.ID, "grade", req.Grade, "status", a.Status())
	return n, nil
}

func (s *AssignmentService) reject(err error) error {
	s.metrics.RecordRejection(err)
	return err
}
