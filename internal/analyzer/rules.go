package analyzer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gamewatch/gamewatch/internal/report"
)

// Message directions a rule can match.
const (
	DirectionReceived = "received"
	DirectionSent     = "sent"
)

// MessageRule maps one message-type label to a rate threshold and the issue
// and recommendation templates emitted when the rate exceeds it. Rules are
// iterated uniformly instead of branching on type literals.
type MessageRule struct {
	Type           string  `yaml:"type"`
	Direction      string  `yaml:"direction"`
	Threshold      float64 `yaml:"threshold"`
	Issue          string  `yaml:"issue"`
	Recommendation string  `yaml:"recommendation"`
	// IntervalHint appends the implied client send interval (1000/rate ms)
	// to the recommendation. Skipped when the rate is not positive.
	IntervalHint bool `yaml:"intervalHint"`
}

// ruleConfigFile is the YAML root structure of a rule pack.
type ruleConfigFile struct {
	Rules []MessageRule `yaml:"rules"`
}

// DefaultMessageRules reproduces the built-in per-type checks: client update
// floods on the receive side and playerUpdate broadcast multiplication on
// the send side.
func DefaultMessageRules() []MessageRule {
	return []MessageRule{
		{
			Type:           "update",
			Direction:      DirectionReceived,
			Threshold:      20,
			Issue:          "High update rate: %.1f/sec per connection",
			Recommendation: "Reduce update frequency in multiplayer client",
			IntervalHint:   true,
		},
		{
			Type:           "playerUpdate",
			Direction:      DirectionSent,
			Threshold:      50,
			Issue:          "CRITICAL: playerUpdate rate: %.1f/sec",
			Recommendation: "PlayerUpdate broadcasts are multiplied by player count - this is causing network saturation",
		},
	}
}

// LoadMessageRules loads a rule pack from the provided path. A missing file
// is not an error: the built-in rules apply.
func LoadMessageRules(path string, logger *slog.Logger) ([]MessageRule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var cfg ruleConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	for i, rule := range cfg.Rules {
		if err := validateIssueTemplate(rule.Issue); err != nil {
			return nil, fmt.Errorf("rule %d (%s %s): %w", i+1, rule.Direction, rule.Type, err)
		}
	}
	if logger != nil {
		logger.Debug("loaded message rule pack", slog.String("path", path), slog.Int("rules", len(cfg.Rules)))
	}
	return cfg.Rules, nil
}

// validateIssueTemplate checks that an issue template carries exactly one
// numeric verb, since the observed rate is its only formatting argument.
func validateIssueTemplate(tmpl string) error {
	numeric := 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '%' {
			continue
		}
		i++
		if i < len(tmpl) && tmpl[i] == '%' {
			continue
		}
		for i < len(tmpl) && strings.IndexByte("+-# 0123456789.", tmpl[i]) >= 0 {
			i++
		}
		if i >= len(tmpl) {
			return fmt.Errorf("issue template %q: incomplete verb", tmpl)
		}
		switch tmpl[i] {
		case 'f', 'F', 'e', 'E', 'g', 'G', 'd':
			numeric++
		default:
			return fmt.Errorf("issue template %q: unsupported verb %%%c", tmpl, tmpl[i])
		}
	}
	if numeric != 1 {
		return fmt.Errorf("issue template %q: expected exactly one numeric verb, found %d", tmpl, numeric)
	}
	return nil
}

// applyMessageRules evaluates every rule matching the message type and
// direction against the observed rate.
func (a *Analyzer) applyMessageRules(rep *report.Report, direction, msgType string, rate float64) {
	for _, rule := range a.messageRules {
		if rule.Type != msgType || rule.Direction != direction {
			continue
		}
		if rate <= rule.Threshold {
			continue
		}
		rep.AddIssue(rule.Issue, rate)
		if rule.Recommendation == "" {
			continue
		}
		if rule.IntervalHint && rate > 0 {
			rep.AddRecommendation("%s (currently ~%.0fms)", rule.Recommendation, 1000/rate)
		} else {
			rep.AddRecommendation("%s", rule.Recommendation)
		}
	}
}
