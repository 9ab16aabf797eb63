package main

import (
	"context"
	"fmt"

	"github.com/noah-isme/classroom-core/internal/models"
	"github.com/noah-isme/classroom-core/internal/service"
)

type classroom struct {
	users       *service.UserService
	courses     *service.CourseService
	enrollments *service.EnrollmentService
	assignments *service.AssignmentService
	reports     *service.ReportService
}

type scenarioResult struct {
	Notifications []models.Notification
	Export        *service.ExportResult
}

// runScenario wires one teacher, student, administrator, course and assignment
// and collects the notifications in call order.
func runScenario(ctx context.Context, app *classroom, exportFormat string) (*scenarioResult, error) {
	out := &scenarioResult{}
	emit := func(ns ...models.Notification) { out.Notifications = append(out.Notifications, ns...) }

	teacher, err := app.users.Register(ctx, service.RegisterUserRequest{Name: "Ivan Petrov", Email: "ivan@school.com", Role: models.RoleTeacher})
	if err != nil {
		return nil, fmt.Errorf("register teacher: %w", err)
	}
	student, err := app.users.Register(ctx, service.RegisterUserRequest{Name: "Maria Ivanova", Email: "maria@school.com", Role: models.RoleStudent})
	if err != nil {
		return nil, fmt.Errorf("register student: %w", err)
	}
	admin, err := app.users.Register(ctx, service.RegisterUserRequest{Name: "Olena Sydorova", Email: "olena@school.com", Role: models.RoleAdmin})
	if err != nil {
		return nil, fmt.Errorf("register administrator: %w", err)
	}

	course, err := app.courses.Create(ctx, service.CreateCourseRequest{TeacherID: teacher.User.ID, Name: "Java Basics"})
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	ns, err := app.courses.AddMaterial(ctx, service.AddMaterialRequest{TeacherID: teacher.User.ID, CourseID: course.ID, Content: "Introduction to Java", Important: true})
	if err != nil {
		return nil, fmt.Errorf("add material: %w", err)
	}
	emit(ns...)
	ns, err = app.courses.AddMaterial(ctx, service.AddMaterialRequest{TeacherID: teacher.User.ID, CourseID: course.ID, Content: "OOP in Java"})
	if err != nil {
		return nil, fmt.Errorf("add material: %w", err)
	}
	emit(ns...)

	emit(student.Notification)
	n, err := app.enrollments.Enroll(ctx, service.EnrollRequest{StudentID: student.User.ID, CourseID: course.ID})
	if err != nil {
		return nil, fmt.Errorf("enroll: %w", err)
	}
	emit(n)

	assignment, err := app.assignments.Create(ctx, service.CreateAssignmentRequest{Title: "First Java program"})
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	n, err = app.assignments.Submit(ctx, service.SubmitAssignmentRequest{AssignmentID: assignment.ID, StudentID: student.User.ID})
	if err != nil {
		return nil, fmt.Errorf("submit assignment: %w", err)
	}
	emit(n)
	n, err = app.assignments.Evaluate(ctx, service.EvaluateAssignmentRequest{TeacherID: teacher.User.ID, AssignmentID: assignment.ID, Grade: 85})
	if err != nil {
		return nil, fmt.Errorf("evaluate assignment: %w", err)
	}
	emit(n)

	for _, id := range []string{teacher.User.ID, student.User.ID, admin.User.ID} {
		n, err := app.users.Login(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		emit(n)
	}

	n, err = app.reports.Generate(ctx, admin.User.ID, course.ID)
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	emit(n)

	if exportFormat != "" {
		res, err := app.reports.ExportRoster(ctx, service.ExportRosterRequest{AdminID: admin.User.ID, CourseID: course.ID, Format: exportFormat})
		if err != nil {
			return nil, fmt.Errorf("export roster: %w", err)
		}
		out.Export = res
	}
	return out, nil
}
