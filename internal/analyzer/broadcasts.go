package analyzer

import (
	"context"

	"github.com/gamewatch/gamewatch/internal/extractors"
	"github.com/gamewatch/gamewatch/internal/report"
)

func (a *Analyzer) analyzeBroadcasts(ctx context.Context, rep *report.Report) {
	sec := rep.Section("BROADCAST ANALYSIS")

	broadcastRate := extractors.Scalar(a.querier.Instant(ctx, queryBroadcastRate))
	meanRecipients := extractors.Scalar(a.querier.Instant(ctx, queryBroadcastMeanRecipient))

	sec.Linef("Broadcast Rate: %.2f/sec", broadcastRate)
	sec.Linef("Avg Recipients: %.1f players", meanRecipients)

	// Each broadcast fans out into one message per recipient.
	effectiveRate := broadcastRate * meanRecipients
	sec.Linef("Effective Rate: %.1f messages/sec", effectiveRate)
	sec.Linef("  (each broadcast creates %.0f individual messages)", meanRecipients)

	if effectiveRate > a.thresholds.EffectiveBroadcastRate {
		rep.AddIssue("CRITICAL: Effective broadcast rate: %.1f/sec", effectiveRate)
		rep.AddRecommendation("Implement spatial partitioning: only broadcast to nearby players")
		rep.AddRecommendation("Use interest management: players only receive updates for visible objects")
	}

	p95 := extractors.Scalar(a.querier.Instant(ctx, queryBroadcastP95Recipient))
	sec.Linef("95th percentile recipients: %.1f", p95)
}
