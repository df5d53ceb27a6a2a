package analyzer

import (
	"context"

	"github.com/gamewatch/gamewatch/internal/extractors"
	"github.com/gamewatch/gamewatch/internal/report"
)

func (a *Analyzer) analyzeProcessing(ctx context.Context, rep *report.Report) {
	sec := rep.Section("PERFORMANCE ANALYSIS")

	durations := extractors.ByType(a.querier.Instant(ctx, queryProcessingP95))

	sec.Linef("95th Percentile Processing Time:")
	for _, lv := range extractors.SortedByValue(durations) {
		ms := lv.Value * 1000
		sec.Linef("  %-20s: %6.2fms", lv.Label, ms)

		if ms > a.thresholds.ProcessingP95Ms {
			rep.AddIssue("Slow processing for %s: %.1fms", lv.Label, ms)
			rep.AddRecommendation("Optimize %s message handler", lv.Label)
		}
	}
}
