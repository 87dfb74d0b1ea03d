// Package telemetry provides OpenTelemetry instrumentation for the advisor
// service. It exports Prometheus metrics and provides tracing capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "advisor"

// Metrics holds all advisor Prometheus metrics
type Metrics struct {
	// Question answering metrics
	QuestionsAsked     *prometheus.CounterVec
	AskDuration        prometheus.Histogram
	RetrievalDuration  prometheus.Histogram
	RetrievedDocuments prometheus.Histogram

	// Moderation metrics
	SubmissionsReceived prometheus.Counter
	VerdictsTotal       *prometheus.CounterVec
	ModerationDuration  prometheus.Histogram
	ClassifierFailures  *prometheus.CounterVec

	// Backpressure metrics
	QueueDepth    prometheus.Gauge
	ActiveWorkers prometheus.Gauge
	WorkDropped   prometheus.Counter
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initAskMetrics(m)
	initModerationMetrics(m)
	initBackpressureMetrics(m)
	return m
}

func initAskMetrics(m *Metrics) {
	m.QuestionsAsked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_questions_asked_total",
		Help: "Total questions answered, by outcome (ok, retrieval_error, generation_error)",
	}, []string{"outcome"})

	m.AskDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "advisor_ask_duration_seconds",
		Help:    "End-to-end time to answer a question",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
	})

	m.RetrievalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "advisor_retrieval_duration_seconds",
		Help:    "Time to embed a question and search the corpus",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	})

	m.RetrievedDocuments = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "advisor_retrieved_documents",
		Help:    "Number of context documents per question",
		Buckets: []float64{0, 1, 2, 3, 5, 10},
	})
}

func initModerationMetrics(m *Metrics) {
	m.SubmissionsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "advisor_submissions_received_total",
		Help: "Total user experience submissions accepted for moderation",
	})

	m.VerdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_moderation_verdicts_total",
		Help: "Total moderation verdicts, by status and severity",
	}, []string{"status", "severity"})

	m.ModerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "advisor_moderation_duration_seconds",
		Help:    "Time to run the full moderation pass on one submission",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	})

	m.ClassifierFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_classifier_failures_total",
		Help: "Total ML sidecar failures swallowed during moderation",
	}, []string{"model"})
}

func initBackpressureMetrics(m *Metrics) {
	m.QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "advisor_moderation_queue_depth",
		Help: "Current pending submissions in the moderation queue",
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "advisor_moderation_active_workers",
		Help: "Currently active moderation worker goroutines",
	})

	m.WorkDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "advisor_moderation_dropped_total",
		Help: "Submissions dropped because the moderation queue was full",
	})
}

// RecordAsk records metrics for one answered question
func (p *Provider) RecordAsk(ctx context.Context, outcome string, duration time.Duration) {
	p.Metrics.QuestionsAsked.WithLabelValues(outcome).Inc()
	p.Metrics.AskDuration.Observe(duration.Seconds())
}

// RecordRetrieval records the retrieval phase of one question
func (p *Provider) RecordRetrieval(ctx context.Context, documents int, duration time.Duration) {
	p.Metrics.RetrievalDuration.Observe(duration.Seconds())
	p.Metrics.RetrievedDocuments.Observe(float64(documents))
}

// RecordVerdict records one moderation verdict
func (p *Provider) RecordVerdict(ctx context.Context, status, severity string, duration time.Duration) {
	if severity == "" {
		severity = "none"
	}
	p.Metrics.VerdictsTotal.WithLabelValues(status, severity).Inc()
	p.Metrics.ModerationDuration.Observe(duration.Seconds())
}

// RecordClassifierFailure records a swallowed ML sidecar failure
func (p *Provider) RecordClassifierFailure(ctx context.Context, model string) {
	p.Metrics.ClassifierFailures.WithLabelValues(model).Inc()
}

// SetQueueDepth sets the current moderation queue depth
func (p *Provider) SetQueueDepth(depth int) {
	p.Metrics.QueueDepth.Set(float64(depth))
}

// SetActiveWorkers sets the current active worker count
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// IncrementWorkDropped increments the dropped submission counter
func (p *Provider) IncrementWorkDropped() {
	p.Metrics.WorkDropped.Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
