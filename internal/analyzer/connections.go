package analyzer

import (
	"context"

	"github.com/gamewatch/gamewatch/internal/extractors"
	"github.com/gamewatch/gamewatch/internal/report"
)

func (a *Analyzer) analyzeConnections(ctx context.Context, rep *report.Report) {
	sec := rep.Section("CONNECTION ANALYSIS")

	active := extractors.Scalar(a.querier.Instant(ctx, queryActiveConnections))
	total := extractors.Scalar(a.querier.Instant(ctx, queryTotalConnections))
	errored := extractors.Scalar(a.querier.Instant(ctx, queryConnectionErrors))

	sec.Linef("Active Connections: %d", int(active))
	sec.Linef("Total Connections: %d", int(total))
	sec.Linef("Connection Errors: %d", int(errored))

	if active > a.thresholds.ActiveConnections {
		rep.AddIssue("High number of active connections (>%d)", int(a.thresholds.ActiveConnections))
		rep.AddRecommendation("Consider implementing connection limits or load balancing")
	}

	// The error-rate query is only worth issuing once errors have occurred.
	if errored > 0 {
		errorRate := extractors.Scalar(a.querier.Instant(ctx, queryConnectionErrorRate))
		sec.Linef("Error Rate: %.2f/sec", errorRate)
		if errorRate > a.thresholds.ConnectionErrorRate {
			rep.AddIssue("Connection error rate: %.2f/sec", errorRate)
		}
	}
}
