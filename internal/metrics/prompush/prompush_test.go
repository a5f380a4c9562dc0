package prompush

import (
	"testing"

	"statcheck/internal/metrics"
)

func TestNewBackend_RequiresURL(t *testing.T) {
	if _, err := NewBackend("statcheck", ""); err == nil {
		t.Fatalf("expected an error for empty gateway URL")
	}
}

func TestCountersAccumulate(t *testing.T) {
	b, err := NewBackend("statcheck", "http://localhost:9091")
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}

	b.IncCounter("statcheck_stage_total", 1, metrics.Labels{"stage": "merge", "status": "success"})
	b.IncCounter("statcheck_records_total", 5, metrics.Labels{"kind": "merged"})
	b.ObserveDuration("statcheck_stage_duration_seconds", 0.25, metrics.Labels{"stage": "merge", "status": "success"})
	// Unknown names must be ignored, not panic.
	b.IncCounter("something_else", 1, nil)
	b.ObserveDuration("something_else", 1, nil)

	mfs, err := b.reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := map[string]bool{}
	for _, mf := range mfs {
		found[mf.GetName()] = true
	}
	for _, name := range []string{
		"statcheck_stage_total",
		"statcheck_stage_duration_seconds",
		"statcheck_records_total",
	} {
		if !found[name] {
			t.Errorf("metric %s not gathered; got %v", name, found)
		}
	}
}
