package harness

import "statcheck/internal/dataset"

// Result is the aggregate outcome of one full run.
type Result struct {
	// Validation holds one verdict row per expected player, sorted by
	// playerName, with the Result column set to PASS or FAIL.
	Validation *dataset.Dataset

	// SchemaValid reports whether the actual output conformed to the
	// player-results contract; SchemaErrors lists every violation found.
	SchemaValid  bool
	SchemaErrors []string

	// Fingerprint identifies the merged input snapshot the run was built
	// from, for correlating runs over the same data.
	Fingerprint string
}

// Summary is the verdict tally.
type Summary struct {
	Pass int
	Fail int
}

// Summary counts PASS and FAIL verdicts in the validation dataset.
func (r *Result) Summary() Summary {
	var s Summary
	for _, row := range r.Validation.Rows {
		if v, _ := row.String(resultColumn); v == VerdictPass {
			s.Pass++
		} else {
			s.Fail++
		}
	}
	return s
}

// OK reports whether the run is clean: schema conformance and no FAILs.
func (r *Result) OK() bool {
	return r.SchemaValid && r.Summary().Fail == 0
}
