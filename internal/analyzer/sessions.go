package analyzer

import (
	"context"

	"github.com/gamewatch/gamewatch/internal/extractors"
	"github.com/gamewatch/gamewatch/internal/report"
)

// analyzeSessions is informational only; no session-level thresholds exist.
func (a *Analyzer) analyzeSessions(ctx context.Context, rep *report.Report) {
	sec := rep.Section("SESSION ANALYSIS")

	active := extractors.Scalar(a.querier.Instant(ctx, queryActiveSessions))
	total := extractors.Scalar(a.querier.Instant(ctx, queryTotalSessions))

	sec.Linef("Active Sessions: %d", int(active))
	sec.Linef("Total Created: %d", int(total))

	if active > 0 {
		median := extractors.Scalar(a.querier.Instant(ctx, queryMedianSessionSize))
		sec.Linef("Median Players/Session: %.1f", median)
	}
}
