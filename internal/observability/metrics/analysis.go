package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

// AnalysisMetrics implements ports.AnalysisObserver.
type AnalysisMetrics struct {
	service string

	documentsTotal   *prometheus.CounterVec
	documentDuration *prometheus.HistogramVec
	scores           *prometheus.HistogramVec
	extractionsTotal *prometheus.CounterVec
	spellUnavailable *prometheus.CounterVec
	breakerChanges   *prometheus.CounterVec
}

func NewAnalysisMetrics(service string, registerer prometheus.Registerer) *AnalysisMetrics {
	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "documents_total",
			Help:      "Analyzed documents by format and outcome.",
		},
		[]string{"service", "format", "outcome"},
	)
	documentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "document_duration_seconds",
			Help:      "Per-document pipeline duration in seconds by outcome.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"service", "outcome"},
	)
	scores := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "score",
			Help:      "Distribution of résumé scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		},
		[]string{"service"},
	)
	extractionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extraction",
			Name:      "strategy_total",
			Help:      "Successful text extractions by strategy.",
		},
		[]string{"service", "strategy"},
	)
	spellUnavailable := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "spelling",
			Name:      "unavailable_total",
			Help:      "Documents scored without spelling because the backend failed or timed out.",
		},
		[]string{"service", "backend"},
	)

	breakerChanges := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "spelling",
			Name:      "breaker_transitions_total",
			Help:      "Spell backend circuit breaker transitions by target state.",
		},
		[]string{"service", "operation", "to"},
	)

	if registerer != nil {
		registerer.MustRegister(documentsTotal, documentDuration, scores, extractionsTotal, spellUnavailable, breakerChanges)
	}

	return &AnalysisMetrics{
		service:          service,
		documentsTotal:   documentsTotal,
		documentDuration: documentDuration,
		scores:           scores,
		extractionsTotal: extractionsTotal,
		spellUnavailable: spellUnavailable,
		breakerChanges:   breakerChanges,
	}
}

func (m *AnalysisMetrics) ObserveDocument(format domain.Format, outcome domain.Outcome, duration time.Duration) {
	f := string(format)
	if _, ok := domain.ParseFormat(f); !ok {
		f = "other"
	}
	m.documentsTotal.WithLabelValues(m.service, f, string(outcome)).Inc()
	m.documentDuration.WithLabelValues(m.service, string(outcome)).Observe(duration.Seconds())
}

func (m *AnalysisMetrics) ObserveScore(score int) {
	m.scores.WithLabelValues(m.service).Observe(float64(score))
}

func (m *AnalysisMetrics) ObserveExtraction(strategy string) {
	if strategy == "" {
		strategy = "unknown"
	}
	m.extractionsTotal.WithLabelValues(m.service, strategy).Inc()
}

func (m *AnalysisMetrics) ObserveSpellUnavailable(backend string) {
	if backend == "" {
		backend = "unknown"
	}
	m.spellUnavailable.WithLabelValues(m.service, backend).Inc()
}

// ObserveBreakerState matches resilience.StateListener.
func (m *AnalysisMetrics) ObserveBreakerState(operation, _, to string) {
	m.breakerChanges.WithLabelValues(m.service, operation, to).Inc()
}
