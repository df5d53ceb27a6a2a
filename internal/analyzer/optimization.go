package analyzer

import (
	"context"

	"github.com/gamewatch/gamewatch/internal/extractors"
	"github.com/gamewatch/gamewatch/internal/report"
)

// optimizationScenario describes one hypothetical bandwidth reduction.
type optimizationScenario struct {
	name      string
	reduction float64
	percent   string
}

var optimizationScenarios = []optimizationScenario{
	{"Reduce update rate to 10/sec", 0.5, "50%"},
	{"Implement delta compression", 0.3, "30%"},
	{"Use binary protocol instead of JSON", 0.4, "40%"},
	{"Spatial partitioning (only nearby)", 0.6, "60%"},
}

// estimateOptimizations projects bandwidth savings for the fixed scenarios.
// Purely illustrative; it never appends issues or recommendations.
func (a *Analyzer) estimateOptimizations(ctx context.Context, rep *report.Report) {
	sec := rep.Section("OPTIMIZATION POTENTIAL")

	current := extractors.Scalar(a.querier.Instant(ctx, queryBytesSentRate)) / 1024 / 1024

	sec.Linef("Estimated bandwidth reduction potential:")
	for _, s := range optimizationScenarios {
		saved := current * s.reduction
		after := current * (1 - s.reduction)
		sec.Linef("%s:", s.name)
		sec.Linef("  Current: %.2f MB/sec", current)
		sec.Linef("  After:   %.2f MB/sec", after)
		sec.Linef("  Saved:   %.2f MB/sec (%s)", saved, s.percent)
	}
}
