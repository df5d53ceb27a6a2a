package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels backend queries that returned a result set.
	OutcomeSuccess = "success"
	// OutcomeError labels backend queries that failed and degraded to empty.
	OutcomeError = "error"
)

const (
	namespace = "gamewatch"

	queriesTotalName      = namespace + "_backend_queries_total"
	analysisDurationsName = namespace + "_analysis_seconds"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_queries_total",
			Help:      "Total number of backend queries issued, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	analysisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_seconds",
			Help:      "Full analysis run latency in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)
)

// Register attaches gamewatch collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		queriesTotal,
		analysisDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveQuery counts a backend query by outcome label.
func ObserveQuery(outcome string) {
	label := outcome
	if label != OutcomeError {
		label = OutcomeSuccess
	}
	queriesTotal.WithLabelValues(label).Inc()
}

// ObserveAnalysis records the duration of a full analysis run.
func ObserveAnalysis(duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.Observe(duration.Seconds())
}

// Snapshot is the self-instrumentation state read back out of a registry
// once a run completes. It feeds the report diagnostics.
type Snapshot struct {
	QuerySuccesses  int
	QueryErrors     int
	AnalysisSeconds float64
}

// Collect gathers the gamewatch collectors from the registry they were
// registered on.
func Collect(g prometheus.Gatherer) (Snapshot, error) {
	families, err := g.Gather()
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	for _, family := range families {
		switch family.GetName() {
		case queriesTotalName:
			for _, m := range family.GetMetric() {
				outcome := ""
				for _, label := range m.GetLabel() {
					if label.GetName() == "outcome" {
						outcome = label.GetValue()
					}
				}
				n := int(m.GetCounter().GetValue())
				if outcome == OutcomeError {
					snap.QueryErrors += n
				} else {
					snap.QuerySuccesses += n
				}
			}
		case analysisDurationsName:
			for _, m := range family.GetMetric() {
				snap.AnalysisSeconds += m.GetHistogram().GetSampleSum()
			}
		}
	}
	return snap, nil
}
