package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

func TestValidate_DefaultIsClean(t *testing.T) {
	if issues := Validate(Default()); len(issues) != 0 {
		t.Fatalf("default config should lint clean, got %+v", issues)
	}
}

/*
TestValidate_EmptyRoots verifies that each empty data root produces its own
SeverityError and that HasErrors flags the set.
*/
func TestValidate_EmptyRoots(t *testing.T) {
	c := Default()
	c.Input.Dir = ""
	c.Temp.Dir = "  "

	issues := Validate(c)
	if !hasIssue(t, issues, SeverityError, "input.dir", "must not be empty") {
		t.Fatalf("missing input.dir error: %+v", issues)
	}
	if !hasIssue(t, issues, SeverityError, "temp.dir", "must not be empty") {
		t.Fatalf("missing temp.dir error: %+v", issues)
	}
	if !HasErrors(issues) {
		t.Fatalf("HasErrors should be true")
	}
}

func TestValidate_MetricsWarnings(t *testing.T) {
	c := Default()
	c.Metrics.Backend = "statsd"
	issues := Validate(c)
	if !hasIssue(t, issues, SeverityWarning, "metrics.backend", "unknown metrics backend") {
		t.Fatalf("missing backend warning: %+v", issues)
	}
	if HasErrors(issues) {
		t.Fatalf("warnings must not count as errors")
	}

	c.Metrics.Backend = "pushgateway"
	c.Metrics.PushgatewayURL = ""
	issues = Validate(c)
	if !hasIssue(t, issues, SeverityWarning, "metrics.pushgateway_url", "default") {
		t.Fatalf("missing pushgateway URL warning: %+v", issues)
	}
}
