package analyzer

import (
	"context"

	"github.com/gamewatch/gamewatch/internal/extractors"
	"github.com/gamewatch/gamewatch/internal/report"
)

func (a *Analyzer) analyzeBandwidth(ctx context.Context, rep *report.Report) {
	sec := rep.Section("BANDWIDTH ANALYSIS")

	bytesSent := extractors.Scalar(a.querier.Instant(ctx, queryBytesSentRate))
	bytesRecv := extractors.Scalar(a.querier.Instant(ctx, queryBytesReceivedRate))

	kbSent := bytesSent / 1024
	mbSent := bytesSent / 1024 / 1024
	kbRecv := bytesRecv / 1024

	sec.Linef("Sent:     %8.2f KB/sec (%.3f MB/sec)", kbSent, mbSent)
	sec.Linef("Received: %8.2f KB/sec", kbRecv)
	sec.Linef("Total:    %8.2f KB/sec", kbSent+kbRecv)

	// Per-connection share only makes sense with at least one connection.
	active := extractors.Scalar(a.querier.Instant(ctx, queryActiveConnections))
	if active > 0 {
		perConn := kbSent / active
		sec.Linef("Per Connection: %8.2f KB/sec sent", perConn)
		if perConn > a.thresholds.PerConnectionKBps {
			rep.AddIssue("High per-connection bandwidth: %.1f KB/sec", perConn)
		}
	}

	if mbSent > a.thresholds.BandwidthCriticalMBps {
		rep.AddIssue("CRITICAL: Bandwidth exceeds %g MB/sec (%.2f MB/sec)", a.thresholds.BandwidthCriticalMBps, mbSent)
		rep.AddRecommendation("This will saturate most home internet connections. Consider implementing message throttling and compression.")
	} else if kbSent > a.thresholds.BandwidthHighKBps {
		rep.AddIssue("High bandwidth usage: %.1f KB/sec", kbSent)
		rep.AddRecommendation("Optimize message payloads and reduce update frequency")
	}
}
