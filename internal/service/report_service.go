package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-core/internal/models"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
	"github.com/noah-isme/classroom-core/pkg/export"
	"github.com/noah-isme/classroom-core/pkg/validation"
)

type reportStore interface {
	FindAdministrator(id string) (*models.Administrator, error)
	FindTeacher(id string) (*models.Teacher, error)
	FindCourse(id string) (*models.Course, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportRosterRequest asks for a rendered course roster.
type ExportRosterRequest struct {
	AdminID  string `json:"admin_id" validate:"required"`
	CourseID string `json:"course_id" validate:"required"`
	Format   string `json:"format" validate:"required"`
}

// ExportResult carries a rendered roster.
type ExportResult struct {
	Filename    string
	ContentType string
	Format      export.Format
	Data        []byte
}

// ReportService serves the administrator's read-only views.
type ReportService struct {
	repo      reportStore
	locks     *Locks
	renderers map[export.Format]datasetRenderer
	validator *validation.Validator
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs ReportService.
func NewReportService(repo reportStore, locks *Locks, validate *validation.Validator, metrics *MetricsService, logger *zap.Logger, csv, pdf datasetRenderer) *ReportService {
	if locks == nil {
		locks = NewLocks()
	}
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ReportService{
		repo:      repo,
		locks:     locks,
		renderers: map[export.Format]datasetRenderer{export.FormatCSV: csv, export.FormatPDF: pdf},
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate produces the superficial course report.
func (s *ReportService) Generate(ctx context.Context, adminID, courseID string) (models.Notification, error) {
	admin, err := s.repo.FindAdministrator(adminID)
	if err != nil {
		return models.Notification{}, s.reject(lookupError(err, "administrator"))
	}
	course, err := s.repo.FindCourse(courseID)
	if err != nil {
		return models.Notification{}, s.reject(lookupError(err, "course"))
	}
	n := admin.GenerateReport(course)
	s.metrics.RecordNotifications(n)
	s.logger.Sugar().Infow("course report generated", "course_id", course.ID, "admin_id", admin.ID)
	return n, nil
}

// ExportRoster renders the course materials and enrolled students. It lists
// entries as stored; nothing is aggregated.
func (s *ReportService) ExportRoster(ctx context.Context, req ExportRosterRequest) (*ExportResult, error) {
	if err := s.validator.Struct(req, "invalid export payload"); err != nil {
		return nil, s.reject(err)
	}
	format, ok := export.ParseFormat(req.Format)
	if !ok {
		return nil, s.reject(appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", req.Format)))
	}
	admin, err := s.repo.FindAdministrator(req.AdminID)
	if err != nil {
		return nil, s.reject(lookupError(err, "administrator"))
	}
	course, err := s.repo.FindCourse(req.CourseID)
	if err != nil {
		return nil, s.reject(lookupError(err, "course"))
	}

	dataset := s.rosterDataset(admin, course)
	data, err := s.renderers[format].Render(dataset)
	if err != nil {
		s.logger.Sugar().Errorw("roster render failed", "course_id", course.ID, "format", format, "error", err)
		return nil, s.reject(appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to render roster"))
	}

	s.logger.Sugar().Infow("course roster exported", "course_id", course.ID, "format", format, "bytes", len(data))
	return &ExportResult{
		Filename:    fmt.Sprintf("roster-%s.%s", slug(course.Name), format),
		ContentType: format.ContentType(),
		Format:      format,
		Data:        data,
	}, nil
}

func (s *ReportService) rosterDataset(admin *models.Administrator, course *models.Course) export.Dataset {
	release := s.locks.acquire(course.ID)
	materials := course.Materials()
	students := course.Students()
	release()

	owner := course.OwnerID
	if teacher, err := s.repo.FindTeacher(course.OwnerID); err == nil {
		owner = teacher.Name
	}

	rows := make([]map[string]string, 0, len(materials)+len(students))
	for i, m := range materials {
		rows = append(rows, map[string]string{"section": "material", "position": strconv.Itoa(i + 1), "value": m})
	}
	for i, st := range students {
		rows = append(rows, map[string]string{"section": "student", "position": strconv.Itoa(i + 1), "value": st.Name, "email": st.Email})
	}

	return export.Dataset{
		Title: "Course roster: " + course.Name,
		Notes: []string{
			"Teacher: " + owner,
			"Generated by: " + admin.Name,
			"Generated at: " + s.now().Format(time.RFC3339),
		},
		Headers: []string{"section", "position", "value", "email"},
		Rows:    rows,
	}
}

func (s *ReportService) reject(err error) error {
	s.metrics.RecordRejection(err)
	return err
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "course"
	}
	return out
}
