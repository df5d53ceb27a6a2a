package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/gamewatch/gamewatch/internal/config"
	"github.com/gamewatch/gamewatch/internal/repo"
	"github.com/gamewatch/gamewatch/internal/report"
	"github.com/gamewatch/gamewatch/internal/utils"
)

// Querier is the backend query surface the analysis modules depend on.
// Instant and Range swallow failures into empty results; Ping is the only
// call that surfaces an error.
type Querier interface {
	Instant(ctx context.Context, expr string) repo.Result
	Range(ctx context.Context, expr string, window time.Duration) repo.Result
	Ping(ctx context.Context) error
}

// diagnosticSource is optionally implemented by queriers that track
// per-query failures and latency for the run diagnostics.
type diagnosticSource interface {
	FailedQueries() []string
	QueryP95() time.Duration
}

// Analyzer runs the fixed analysis sequence against one backend and
// accumulates findings into a report.
type Analyzer struct {
	logger        *slog.Logger
	querier       Querier
	thresholds    config.Thresholds
	messageRules  []MessageRule
	prometheusURL string
	grafanaURL    string
}

// New constructs an analyzer. Nil message rules fall back to the built-in pack.
func New(logger *slog.Logger, querier Querier, cfg *config.Config, rules []MessageRule) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if len(rules) == 0 {
		rules = DefaultMessageRules()
	}
	return &Analyzer{
		logger:        logger,
		querier:       querier,
		thresholds:    cfg.Thresholds,
		messageRules:  rules,
		prometheusURL: cfg.Prometheus.BaseURL,
		grafanaURL:    cfg.Grafana.BaseURL,
	}
}

// Run checks connectivity, executes every analysis module in its fixed
// order, and returns the accumulated report. A connectivity failure is the
// only fatal condition: no module runs and the error carries the operator
// remediation hint.
func (a *Analyzer) Run(ctx context.Context) (*report.Report, error) {
	if err := a.querier.Ping(ctx); err != nil {
		return nil, utils.NewAppError(utils.OpConnect, "cannot reach Prometheus", err)
	}
	a.logger.Debug("connected to backend", slog.String("url", a.prometheusURL))

	rep := report.New(a.prometheusURL, a.grafanaURL)

	a.analyzeConnections(ctx, rep)
	a.analyzeMessageRates(ctx, rep)
	a.analyzeBandwidth(ctx, rep)
	a.analyzeBroadcasts(ctx, rep)
	a.analyzeProcessing(ctx, rep)
	a.analyzeSessions(ctx, rep)
	a.analyzeRuntime(ctx, rep)
	a.estimateOptimizations(ctx, rep)

	if src, ok := a.querier.(diagnosticSource); ok {
		rep.Diagnostics = report.Diagnostics{
			FailedQueries: src.FailedQueries(),
			QueryP95:      src.QueryP95(),
		}
		if n := len(rep.Diagnostics.FailedQueries); n > 0 {
			a.logger.Warn("queries degraded to zero", slog.Int("count", n))
		}
	}

	return rep, nil
}
