package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors are package-level, so tests assert deltas rather than totals.
func TestCollectReadsBackObservations(t *testing.T) {
	registry := prometheus.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}

	before, err := Collect(registry)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	ObserveQuery(OutcomeSuccess)
	ObserveQuery(OutcomeSuccess)
	ObserveQuery(OutcomeError)
	ObserveAnalysis(1500 * time.Millisecond)

	after, err := Collect(registry)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if got := after.QuerySuccesses - before.QuerySuccesses; got != 2 {
		t.Errorf("success delta = %d, want 2", got)
	}
	if got := after.QueryErrors - before.QueryErrors; got != 1 {
		t.Errorf("error delta = %d, want 1", got)
	}
	if got := after.AnalysisSeconds - before.AnalysisSeconds; math.Abs(got-1.5) > 1e-9 {
		t.Errorf("analysis seconds delta = %v, want 1.5", got)
	}
}

func TestObserveQueryNormalizesUnknownOutcome(t *testing.T) {
	registry := prometheus.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}

	before, err := Collect(registry)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	ObserveQuery("partial")

	after, err := Collect(registry)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	if got := after.QuerySuccesses - before.QuerySuccesses; got != 1 {
		t.Errorf("unknown outcome must count as success, delta = %d", got)
	}
	if after.QueryErrors != before.QueryErrors {
		t.Error("unknown outcome must not count as error")
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	registry := prometheus.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := Register(registry); err != nil {
		t.Fatalf("second register: %v", err)
	}
}

func TestObserveAnalysisClampsNegative(t *testing.T) {
	registry := prometheus.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}

	before, err := Collect(registry)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	ObserveAnalysis(-time.Second)

	after, err := Collect(registry)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if after.AnalysisSeconds < before.AnalysisSeconds {
		t.Errorf("negative duration must clamp to zero, delta = %v", after.AnalysisSeconds-before.AnalysisSeconds)
	}
}
