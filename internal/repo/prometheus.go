package repo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/gamewatch/gamewatch/internal/metrics"
	"github.com/gamewatch/gamewatch/internal/utils"
)

// Result is the outcome of a single backend query. A failed query carries
// the error for diagnostics while extraction degrades it to zero, so one
// absent series never aborts the whole report.
type Result struct {
	Value model.Value
	Err   error
}

// Failed reports whether the backend query failed rather than measuring zero.
func (r Result) Failed() bool { return r.Err != nil }

// PromClient issues instant and range queries against a Prometheus-compatible
// backend. Failures are swallowed into empty Results; Ping is the only
// operation that surfaces an error.
type PromClient struct {
	api         v1.API
	timeout     time.Duration
	pingTimeout time.Duration
	step        time.Duration
	logger      *slog.Logger
	latencies   *utils.LatencyTracker

	mu       sync.Mutex
	failures []string
}

// NewPromClient constructs a client targeting the configured Prometheus instance.
func NewPromClient(baseURL string, queryTimeout, pingTimeout, step time.Duration, logger *slog.Logger) (*PromClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("prometheus base URL not configured")
	}
	client, err := api.NewClient(api.Config{Address: baseURL})
	if err != nil {
		return nil, fmt.Errorf("create prometheus client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if step <= 0 {
		step = 15 * time.Second
	}
	return &PromClient{
		api:         v1.NewAPI(client),
		timeout:     queryTimeout,
		pingTimeout: pingTimeout,
		step:        step,
		logger:      logger,
		latencies:   utils.NewLatencyTracker(256),
	}, nil
}

// Instant issues a single-point-in-time query.
func (c *PromClient) Instant(ctx context.Context, expr string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	value, warnings, err := c.api.Query(ctx, expr, time.Now())
	c.observe(expr, time.Since(start), warnings, err)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Value: value}
}

// Range issues a query over [now-window, now] at the configured step.
func (c *PromClient) Range(ctx context.Context, expr string, window time.Duration) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	end := time.Now()
	r := v1.Range{Start: end.Add(-window), End: end, Step: c.step}

	start := time.Now()
	value, warnings, err := c.api.QueryRange(ctx, expr, r)
	c.observe(expr, time.Since(start), warnings, err)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Value: value}
}

// Ping verifies backend connectivity with a trivial instant query under the
// short connect timeout.
func (c *PromClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	if _, _, err := c.api.Query(ctx, "1", time.Now()); err != nil {
		return fmt.Errorf("prometheus unreachable: %w", err)
	}
	return nil
}

// FailedQueries returns the expressions that failed during this run.
func (c *PromClient) FailedQueries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.failures...)
}

// QueryP95 returns the 95th-percentile backend query latency for this run.
func (c *PromClient) QueryP95() time.Duration {
	return c.latencies.Percentile(95)
}

func (c *PromClient) observe(expr string, elapsed time.Duration, warnings v1.Warnings, err error) {
	c.latencies.Observe(elapsed)
	if len(warnings) > 0 {
		c.logger.Debug("query warnings", slog.String("expr", expr), slog.Any("warnings", warnings))
	}
	if err != nil {
		metrics.ObserveQuery(metrics.OutcomeError)
		c.logger.Debug("query failed", slog.String("expr", expr), slog.Any("error", err))
		c.mu.Lock()
		c.failures = append(c.failures, expr)
		c.mu.Unlock()
		return
	}
	metrics.ObserveQuery(metrics.OutcomeSuccess)
}
