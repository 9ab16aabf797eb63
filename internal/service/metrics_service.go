package service

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/noah-isme/classroom-core/internal/models"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
)

// MetricsSnapshot summarises counters for logging by the presentation layer.
type MetricsSnapshot struct {
	Notifications uint64 `json:"notifications"`
	Evaluations   uint64 `json:"evaluations"`
	Rejections    uint64 `json:"rejections"`
}

// MetricsService encapsulates Prometheus instrumentation of classroom operations.
type MetricsService struct {
	registry      *prometheus.Registry
	notifications *prometheus.CounterVec
	evaluations   *prometheus.CounterVec
	rejections    *prometheus.CounterVec

	notificationCount uint64
	evaluationCount   uint64
	rejectionCount    uint64
}

// NewMetricsService registers the classroom collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classroom",
		Name:      "notifications_total",
		Help:      "Notifications emitted by domain operations",
	}, []string{"kind"})

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classroom",
		Name:      "assignment_evaluations_total",
		Help:      "Assignment evaluations by resulting status",
	}, []string{"status"})

	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "classroom",
		Name:      "rejected_operations_total",
		Help:      "Operations rejected with a typed error",
	}, []string{"code"})

	registry.MustRegister(notifications, evaluations, rejections)

	return &MetricsService{
		registry:      registry,
		notifications: notifications,
		evaluations:   evaluations,
		rejections:    rejections,
	}
}

// Registry exposes the underlying registry for gathering.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordNotifications counts emitted notifications by kind.
func (m *MetricsService) RecordNotifications(ns ...models.Notification) {
	if m == nil {
		return
	}
	for _, n := range ns {
		m.notifications.WithLabelValues(string(n.Kind)).Inc()
		atomic.AddUint64(&m.notificationCount, 1)
	}
}

// RecordEvaluation counts an evaluation outcome.
func (m *MetricsService) RecordEvaluation(status models.AssignmentStatus) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(string(status)).Inc()
	atomic.AddUint64(&m.evaluationCount, 1)
}

// RecordRejection counts a rejected operation by error code.
func (m *MetricsService) RecordRejection(err error) {
	if m == nil || err == nil {
		return
	}
	m.rejections.WithLabelValues(appErrors.FromError(err).Code).Inc()
	atomic.AddUint64(&m.rejectionCount, 1)
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		Notifications: atomic.LoadUint64(&m.notificationCount),
		Evaluations:   atomic.LoadUint64(&m.evaluationCount),
		Rejections:    atomic.LoadUint64(&m.rejectionCount),
	}
}
