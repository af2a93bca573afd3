package observability

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeValid    = "valid"
	OutcomeRepaired = "repaired"
	OutcomeUnsafe   = "unsafe"
	// OutcomeInvalid marks reports only checked for validity, never repaired.
	OutcomeInvalid = "invalid"
)

var (
	registerOnce sync.Once

	batchReports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportctl",
			Subsystem: "batch",
			Name:      "reports_total",
			Help:      "Reports evaluated by outcome.",
		},
		[]string{"outcome"},
	)
	batchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reportctl",
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Batch evaluation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	strategyDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportctl",
			Subsystem: "strategy",
			Name:      "decisions_total",
			Help:      "Repair strategy answers by strategy and result.",
		},
		[]string{"strategy", "result"},
	)
	auditDivergences = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reportctl",
			Subsystem: "audit",
			Name:      "divergences_total",
			Help:      "Reports where the heuristic and exhaustive strategies disagree.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(batchReports, batchDuration, strategyDecisions, auditDivergences)
	})
}

func RecordReport(outcome string) {
	RegisterMetrics()
	batchReports.WithLabelValues(outcome).Inc()
}

func RecordBatch(command string, duration time.Duration) {
	RegisterMetrics()
	batchDuration.WithLabelValues(command).Observe(duration.Seconds())
}

func RecordDecision(strategy string, repairable bool) {
	RegisterMetrics()
	strategyDecisions.WithLabelValues(strategy, strconv.FormatBool(repairable)).Inc()
}

// DecisionCounter returns the decision series for strategy and result.
func DecisionCounter(strategy string, repairable bool) prometheus.Counter {
	RegisterMetrics()
	return strategyDecisions.WithLabelValues(strategy, strconv.FormatBool(repairable))
}

// ReportCounter returns the report series for outcome.
func ReportCounter(outcome string) prometheus.Counter {
	RegisterMetrics()
	return batchReports.WithLabelValues(outcome)
}

func RecordDivergence() {
	RegisterMetrics()
	auditDivergences.Inc()
}

// WriteTextfile dumps the default registry in the text exposition format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics (%s): %w", path, err)
	}
	return nil
}
