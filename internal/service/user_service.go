package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-core/internal/models"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
	"github.com/noah-isme/classroom-core/pkg/validation"
)

type userStore interface {
	SaveStudent(s *models.Student)
	SaveTeacher(t *models.Teacher)
	SaveAdministrator(a *models.Administrator)
	FindUser(id string) (*models.User, error)
}

// RegisterUserRequest describes account creation.
type RegisterUserRequest struct {
	Name  string          `json:"name" validate:"required,notblank,max=200"`
	Email string          `json:"email" validate:"max=320"`
	Role  models.UserRole `json:"role" validate:"required,oneof=STUDENT TEACHER ADMIN"`
}

// RegisterUserResult carries the created identity and its confirmation.
type RegisterUserResult struct {
	User         models.User         `json:"user"`
	Notification models.Notification `json:"notification"`
}

// UserService creates identities and produces login confirmations.
type UserService struct {
	repo      userStore
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewUserService constructs UserService.
func NewUserService(repo userStore, validate *validation.Validator, metrics *MetricsService, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// Register creates a student, teacher or administrator and confirms the registration.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*RegisterUserResult, error) {
	if err := s.validator.Struct(req, "invalid registration payload"); err != nil {
		s.metrics.RecordRejection(err)
		return nil, err
	}

	var user models.User
	var err error
	switch req.Role {
	case models.RoleStudent:
		var st *models.Student
		if st, err = models.NewStudent(req.Name, req.Email); err == nil {
			s.repo.SaveStudent(st)
			user = st.User
		}
	case models.RoleTeacher:
		var t *models.Teacher
		if t, err = models.NewTeacher(req.Name, req.Email); err == nil {
			s.repo.SaveTeacher(t)
			user = t.User
		}
	case models.RoleAdmin:
		var a *models.Administrator
		if a, err = models.NewAdministrator(req.Name, req.Email); err == nil {
			s.repo.SaveAdministrator(a)
			user = a.User
		}
	}
	if err != nil {
		if errors.Is(err, models.ErrEmptyName) {
			err = appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid registration payload")
		}
		s.metrics.RecordRejection(err)
		return nil, err
	}

	n := user.Register()
	s.metrics.RecordNotifications(n)
	s.logger.Sugar().Infow("user registered", "user_id", user.ID, "role", user.Role)
	return &RegisterUserResult{User: user, Notification: n}, nil
}

// Login returns the role specific login confirmation for id.
func (s *UserService) Login(ctx context.Context, id string) (models.Notification, error) {
	user, err := s.repo.FindUser(id)
	if err != nil {
		err = lookupError(err, "user")
		s.metrics.RecordRejection(err)
		return models.Notification{}, err
	}
	n := user.Login()
	s.metrics.RecordNotifications(n)
	s.logger.Sugar().Debugw("user logged in", "user_id", user.ID, "role", user.Role)
	return n, nil
}
