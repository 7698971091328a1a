package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	ProblemsReportedTotal    metric.Int64Counter
	OrganizationsTotal       metric.Int64Counter
	DirectorySearchesTotal   metric.Int64Counter
	OnboardingCompletedTotal metric.Int64Counter
	CacheRefreshTotal        metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal       metric.Int64Counter
	PermissionCheckDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/ecolink-tn/ecolink-api")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	problemsReportedTotal, err := meter.Int64Counter(
		"problems_reported_total",
		metric.WithDescription("Total number of citizen problem reports"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, err
	}

	organizationsTotal, err := meter.Int64Counter(
		"organizations_total",
		metric.WithDescription("Total number of organization operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	directorySearchesTotal, err := meter.Int64Counter(
		"directory_searches_total",
		metric.WithDescription("Total number of directory listing requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	onboardingCompletedTotal, err := meter.Int64Counter(
		"onboarding_completed_total",
		metric.WithDescription("Total number of completed onboarding wizards"),
		metric.WithUnit("{completion}"),
	)
	if err != nil {
		return nil, err
	}

	cacheRefreshTotal, err := meter.Int64Counter(
		"collection_cache_refresh_total",
		metric.WithDescription("Total number of collection cache refreshes"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, err
	}

	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	permissionCheckDuration, err := meter.Float64Histogram(
		"permission_check_duration_milliseconds",
		metric.WithDescription("Permission check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		HTTPRequestsTotal:        httpRequestsTotal,
		HTTPDurationMs:           httpDurationMs,
		ProblemsReportedTotal:    problemsReportedTotal,
		OrganizationsTotal:       organizationsTotal,
		DirectorySearchesTotal:   directorySearchesTotal,
		OnboardingCompletedTotal: onboardingCompletedTotal,
		CacheRefreshTotal:        cacheRefreshTotal,
		AuthFailuresTotal:        authFailuresTotal,
		PermissionCheckDuration:  permissionCheckDuration,
	}, nil
}

// RecordAuthFailure implements the auth.MetricsRecorder interface
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordPermissionCheck implements the auth.PermissionMetricsRecorder interface
func (m *Metrics) RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool) {
	m.PermissionCheckDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("permission", permission),
		attribute.Bool("allowed", allowed),
	))
}
