package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const rule = "============================================================"

// RenderText writes the human-readable summary: section bodies, numbered
// issues, numbered recommendations, then the dashboard footer.
func (r *Report) RenderText(w io.Writer) error {
	var b strings.Builder

	b.WriteString("Game Server Metrics Analysis\n")
	b.WriteString(rule + "\n")

	for _, sec := range r.Sections {
		b.WriteString("\n" + rule + "\n")
		b.WriteString(sec.Title + "\n")
		b.WriteString(rule + "\n")
		for _, line := range sec.Lines {
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("SUMMARY\n")
	b.WriteString(rule + "\n")

	if len(r.Issues) > 0 {
		fmt.Fprintf(&b, "\n%d Issues Found:\n", len(r.Issues))
		for i, issue := range r.Issues {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, issue)
		}
	} else {
		b.WriteString("\nNo critical issues detected!\n")
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(&b, "\n%d Recommendations:\n", len(r.Recommendations))
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
		}
	}

	if n := len(r.Diagnostics.FailedQueries); n > 0 {
		fmt.Fprintf(&b, "\nNote: %d queries failed and were treated as zero (run with debug logging for details)\n", n)
	}

	fmt.Fprintf(&b, "\nGrafana Dashboard: %s\n", r.GrafanaURL)
	fmt.Fprintf(&b, "Prometheus: %s\n", r.PrometheusURL)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes the report as indented JSON for machine consumers.
func (r *Report) RenderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
