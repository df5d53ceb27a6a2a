package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Report accumulates everything one analysis run produces: informational
// section lines, detected issues, and remediation suggestions. Analysis
// modules only append; rendering is a separate step.
type Report struct {
	RunID           string      `json:"runId"`
	CreatedAt       time.Time   `json:"createdAt"`
	Sections        []Section   `json:"sections"`
	Issues          []string    `json:"issues"`
	Recommendations []string    `json:"recommendations"`
	PrometheusURL   string      `json:"prometheusUrl"`
	GrafanaURL      string      `json:"grafanaUrl"`
	Diagnostics     Diagnostics `json:"diagnostics"`
}

// Section groups the informational lines of one analysis module.
type Section struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Diagnostics summarises how the run behaved at the query level: which
// expressions failed and degraded to zero, backend latency, and the counts
// gathered back from the self-instrumentation registry.
type Diagnostics struct {
	FailedQueries   []string      `json:"failedQueries,omitempty"`
	QueryP95        time.Duration `json:"queryP95Nanos,omitempty"`
	QuerySuccesses  int           `json:"querySuccesses,omitempty"`
	QueryErrors     int           `json:"queryErrors,omitempty"`
	AnalysisSeconds float64       `json:"analysisSeconds,omitempty"`
}

// New creates an empty report stamped with a run ID.
func New(prometheusURL, grafanaURL string) *Report {
	return &Report{
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		PrometheusURL: prometheusURL,
		GrafanaURL:    grafanaURL,
	}
}

// AddIssue appends a detected problem. Issues keep insertion order and are
// never deduplicated; severity is a "CRITICAL:" prefix convention in the
// text itself.
func (r *Report) AddIssue(format string, args ...any) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

// AddRecommendation appends a remediation suggestion, loosely paired with
// the issue that triggered it.
func (r *Report) AddRecommendation(format string, args ...any) {
	r.Recommendations = append(r.Recommendations, fmt.Sprintf(format, args...))
}

// Section starts a new informational section and returns a writer for its lines.
func (r *Report) Section(title string) SectionWriter {
	r.Sections = append(r.Sections, Section{Title: title})
	return SectionWriter{report: r, index: len(r.Sections) - 1}
}

// SectionWriter appends lines to one section of the report.
type SectionWriter struct {
	report *Report
	index  int
}

// Linef appends a formatted line to the section.
func (s SectionWriter) Linef(format string, args ...any) {
	sec := &s.report.Sections[s.index]
	sec.Lines = append(sec.Lines, fmt.Sprintf(format, args...))
}
