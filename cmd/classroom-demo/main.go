package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/noah-isme/classroom-core/internal/repository"
	"github.com/noah-isme/classroom-core/internal/service"
	"github.com/noah-isme/classroom-core/pkg/config"
	"github.com/noah-isme/classroom-core/pkg/export"
	"github.com/noah-isme/classroom-core/pkg/logger"
	"github.com/noah-isme/classroom-core/pkg/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	repo := repository.NewMemoryRepository()
	policy := service.PolicyFromConfig(cfg.Policy)
	locks := service.NewLocks()
	validate := validation.New()
	metrics := service.NewMetricsService()

	app := &classroom{
		users:       service.NewUserService(repo, validate, metrics, logr),
		courses:     service.NewCourseService(repo, policy, locks, validate, metrics, logr),
		enrollments: service.NewEnrollmentService(repo, policy, locks, validate, metrics, logr),
		assignments: service.NewAssignmentService(repo, policy, locks, validate, metrics, logr),
		reports:     service.NewReportService(repo, locks, validate, metrics, logr, export.NewCSVExporter(), export.NewPDFExporter()),
	}

	ctx := context.Background()
	res, err := runScenario(ctx, app, cfg.Demo.ExportFormat)
	if err != nil {
		logr.Sugar().Fatalw("scenario failed", "error", err)
	}
	for _, n := range res.Notifications {
		fmt.Println(n.Message)
	}

	if res.Export != nil {
		path := filepath.Join(cfg.Demo.ExportDir, res.Export.Filename)
		if err := os.WriteFile(path, res.Export.Data, 0o644); err != nil {
			logr.Sugar().Fatalw("failed to write roster", "path", path, "error", err)
		}
		logr.Sugar().Infow("roster written", "path", path, "content_type", res.Export.ContentType)
	}

	courses := app.courses.List(ctx)
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}

	snap := metrics.Snapshot()
	logr.Sugar().Infow("scenario finished", "courses", names, "notifications", snap.Notifications, "evaluations", snap.Evaluations, "rejections", snap.Rejections)

	families, err := metrics.Registry().Gather()
	if err != nil {
		logr.Sugar().Warnw("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			logr.Sugar().Debugw("metric", "name", mf.GetName(), "labels", m.GetLabel(), "value", m.GetCounter().GetValue())
		}
	}
}
