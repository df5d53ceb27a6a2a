package analyzer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMessageRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")

	content := `rules:
  - type: update
    direction: received
    threshold: 20
    issue: "High update rate: %.1f/sec per connection"
    recommendation: "Reduce update frequency in multiplayer client"
    intervalHint: true
  - type: playerUpdate
    direction: sent
    threshold: 50
    issue: "CRITICAL: playerUpdate rate: %.1f/sec"
    recommendation: "PlayerUpdate broadcasts are multiplied by player count - this is causing network saturation"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadMessageRules(path, nil)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Type != "update" || rules[0].Direction != DirectionReceived || !rules[0].IntervalHint {
		t.Errorf("unexpected first rule: %+v", rules[0])
	}
	if rules[1].Threshold != 50 || rules[1].IntervalHint {
		t.Errorf("unexpected second rule: %+v", rules[1])
	}
}

func TestLoadMessageRulesMissingFile(t *testing.T) {
	rules, err := LoadMessageRules(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("missing rule pack must not error: %v", err)
	}
	if rules != nil {
		t.Fatalf("expected nil rules, got %v", rules)
	}
}

func TestLoadMessageRulesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	if err := os.WriteFile(path, []byte("rules: [not: {closed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMessageRules(path, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadMessageRulesRejectsBadIssueTemplate(t *testing.T) {
	cases := []struct {
		name  string
		issue string
	}{
		{"no verb", "High update rate"},
		{"two verbs", "Rate %.1f of %.1f"},
		{"string verb", "High update rate: %s/sec"},
		{"incomplete verb", "High update rate: %.1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "messages.yaml")
			content := "rules:\n  - type: update\n    direction: received\n    threshold: 20\n    issue: \"" + tc.issue + "\"\n"
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadMessageRules(path, nil); err == nil {
				t.Fatalf("issue template %q must be rejected", tc.issue)
			}
		})
	}
}

func TestValidateIssueTemplateAcceptsEscapedPercent(t *testing.T) {
	if err := validateIssueTemplate("High CPU usage: %.1f%%"); err != nil {
		t.Fatalf("escaped percent must be allowed: %v", err)
	}
}

func TestDefaultRulesHaveValidTemplates(t *testing.T) {
	for _, rule := range DefaultMessageRules() {
		if err := validateIssueTemplate(rule.Issue); err != nil {
			t.Errorf("built-in rule %s/%s: %v", rule.Direction, rule.Type, err)
		}
	}
}

func TestNewFallsBackToDefaultRules(t *testing.T) {
	q := &fakeQuerier{}
	a := newTestAnalyzer(t, q)

	if len(a.messageRules) != 2 {
		t.Fatalf("expected built-in rules, got %d", len(a.messageRules))
	}
	types := map[string]bool{}
	for _, r := range a.messageRules {
		types[r.Type] = true
	}
	if !types["update"] || !types["playerUpdate"] {
		t.Fatalf("built-in rule pack incomplete: %+v", a.messageRules)
	}
}
