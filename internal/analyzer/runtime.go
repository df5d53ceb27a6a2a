package analyzer

import (
	"context"

	"github.com/gamewatch/gamewatch/internal/extractors"
	"github.com/gamewatch/gamewatch/internal/report"
)

func (a *Analyzer) analyzeRuntime(ctx context.Context, rep *report.Report) {
	sec := rep.Section("GO RUNTIME ANALYSIS")

	goroutines := extractors.Scalar(a.querier.Instant(ctx, queryGoroutines))
	sec.Linef("Goroutines: %d", int(goroutines))

	if goroutines > a.thresholds.GoroutinesCritical {
		rep.AddIssue("CRITICAL: Very high goroutines: %d", int(goroutines))
		rep.AddRecommendation("Goroutine leak detected - check for blocked channels or missing context cancellation")
	} else if goroutines > a.thresholds.GoroutinesHigh {
		rep.AddIssue("High goroutines: %d", int(goroutines))
		rep.AddRecommendation("Monitor goroutine count for potential leaks")
	}

	heapInuse := extractors.Scalar(a.querier.Instant(ctx, queryHeapInuse))
	heapAlloc := extractors.Scalar(a.querier.Instant(ctx, queryHeapAlloc))
	sysMem := extractors.Scalar(a.querier.Instant(ctx, querySysMemory))

	sec.Linef("Memory:")
	sec.Linef("  Heap In Use:  %8.2f MB", heapInuse/1024/1024)
	sec.Linef("  Allocated:    %8.2f MB", heapAlloc/1024/1024)
	sec.Linef("  System:       %8.2f MB", sysMem/1024/1024)

	heapGrowth := extractors.Scalar(a.querier.Instant(ctx, queryHeapGrowthRate))
	if heapGrowth > a.thresholds.HeapGrowthBytesPerSec {
		rep.AddIssue("Memory growing: %.1f KB/sec", heapGrowth/1024)
		rep.AddRecommendation("Possible memory leak - monitor heap growth over time")
	}

	cpuUsage := extractors.Scalar(a.querier.Instant(ctx, queryCPURate))
	sec.Linef("CPU Usage: %6.2f%%", cpuUsage*100)
	if cpuUsage > a.thresholds.CPUUtilization {
		rep.AddIssue("High CPU usage: %.1f%%", cpuUsage*100)
		rep.AddRecommendation("CPU bottleneck detected - optimize hot paths")
	}

	gcRate := extractors.Scalar(a.querier.Instant(ctx, queryGCRate))
	allocRate := extractors.Scalar(a.querier.Instant(ctx, queryAllocRate))

	sec.Linef("Garbage Collection:")
	sec.Linef("  GC Rate:      %8.2f times/min", gcRate)
	sec.Linef("  Alloc Rate:   %8.2f MB/sec", allocRate/1024/1024)

	if gcRate > a.thresholds.GCPerMinute {
		rep.AddIssue("High GC rate: %.1f times/min", gcRate)
		rep.AddRecommendation("Too many allocations - consider object pooling")
	}
}
