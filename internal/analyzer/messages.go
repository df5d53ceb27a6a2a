package analyzer

import (
	"context"

	"github.com/gamewatch/gamewatch/internal/extractors"
	"github.com/gamewatch/gamewatch/internal/report"
)

func (a *Analyzer) analyzeMessageRates(ctx context.Context, rep *report.Report) {
	sec := rep.Section("MESSAGE RATE ANALYSIS")

	received := extractors.ByType(a.querier.Instant(ctx, queryMessagesReceivedRate))
	sec.Linef("Received (per second):")
	for _, lv := range extractors.SortedByValue(received) {
		sec.Linef("  %-20s: %8.2f/sec", lv.Label, lv.Value)
		a.applyMessageRules(rep, DirectionReceived, lv.Label, lv.Value)
	}

	sent := extractors.ByType(a.querier.Instant(ctx, queryMessagesSentRate))
	sec.Linef("Sent (per second):")
	totalSent := 0.0
	for _, lv := range extractors.SortedByValue(sent) {
		sec.Linef("  %-20s: %8.2f/sec", lv.Label, lv.Value)
		totalSent += lv.Value
		a.applyMessageRules(rep, DirectionSent, lv.Label, lv.Value)
	}
	sec.Linef("  %-20s: %8.2f/sec", "TOTAL", totalSent)

	if totalSent > a.thresholds.TotalMessageRate {
		rep.AddIssue("Very high total message rate: %.1f/sec", totalSent)
	}
}
