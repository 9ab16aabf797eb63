package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-core/internal/models"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
	"github.com/noah-isme/classroom-core/pkg/export"
)

type failingRenderer struct{}

func (failingRenderer) Render(export.Dataset) ([]byte, error) {
	return nil, fmt.Errorf("disk full")
}

func seedRoster(t *testing.T, f *classroomFixture) {
	t.Helper()
	ctx := context.Background()
	_, err := f.courses.AddMaterial(ctx, AddMaterialRequest{CourseID: f.course.ID, Content: "Intro to Java", Important: true})
	require.NoError(t, err)
	_, err = f.courses.AddMaterial(ctx, AddMaterialRequest{CourseID: f.course.ID, Content: "OOP in Java"})
	require.NoError(t, err)
	_, err = f.enrollments.Enroll(ctx, EnrollRequest{StudentID: f.student.ID, CourseID: f.course.ID})
	require.NoError(t, err)
}

func TestReportServiceGenerate(t *testing.T) {
	f := newClassroomFixture(t, Policy{})
	seedRoster(t, f)

	n, err := f.reports.Generate(context.Background(), f.admin.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationReportGenerated, n.Kind)
	assert.Equal(t, "report for course: Java Basics", n.Message)

	_, err = f.reports.Generate(context.Background(), f.teacher.ID, f.course.ID)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestReportServiceExportCSV(t *testing.T) {
	f := newClassroomFixture(t, Policy{})
	seedRoster(t, f)
	f.reports.now = func() time.Time { return time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC) }

	res, err := f.reports.ExportRoster(context.Background(), ExportRosterRequest{AdminID: f.admin.ID, CourseID: f.course.ID, Format: "CSV"})
	require.NoError(t, err)
	assert.Equal(t, "roster-java-basics.csv", res.Filename)
	assert.Equal(t, "text/csv", res.ContentType)

	lines := strings.Split(strings.TrimSpace(string(res.Data)), "\n")
	assert.Equal(t, []string{
		"section,position,value,email",
		"material,1,Intro to Java,",
		"material,2,OOP in Java,",
		"student,1,Maria Ivanova,maria@school.test",
	}, lines)
}

func TestReportServiceExportPDF(t *testing.T) {
	f := newClassroomFixture(t, Policy{})
	seedRoster(t, f)

	res, err := f.reports.ExportRoster(context.Background(), ExportRosterRequest{AdminID: f.admin.ID, CourseID: f.course.ID, Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, export.FormatPDF, res.Format)
	assert.True(t, bytes.HasPrefix(res.Data, []byte("%PDF-")))
}

func TestReportServiceExportErrors(t *testing.T) {
	f := newClassroomFixture(t, Policy{})
	ctx := context.Background()

	_, err := f.reports.ExportRoster(ctx, ExportRosterRequest{AdminID: f.admin.ID, CourseID: f.course.ID, Format: "xlsx"})
	assert.True(t, errors.Is(err, appErrors.ErrUnsupportedFormat))

	_, err = f.reports.ExportRoster(ctx, ExportRosterRequest{AdminID: f.admin.ID, CourseID: "missing", Format: "csv"})
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))

	_, err = f.reports.ExportRoster(ctx, ExportRosterRequest{})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))

	broken := NewReportService(f.repo, nil, nil, f.metrics, zap.NewNop(), failingRenderer{}, nil)
	_, err = broken.ExportRoster(ctx, ExportRosterRequest{AdminID: f.admin.ID, CourseID: f.course.ID, Format: "csv"})
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "java-basics", slug("Java Basics"))
	assert.Equal(t, "основи-java", slug("Основи Java!"))
	assert.Equal(t, "course", slug("***"))
}
