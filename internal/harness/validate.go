package harness

import (
	"statcheck/internal/dataset"
	"statcheck/pkg/records"
)

// resultColumn is appended to each validated record.
const resultColumn = "Result"

// comparedFields are the fields checked per player, in output column order.
var comparedFields = []string{"playerName", "age", "runs", "wickets", "eventType", "playerType"}

// Verdicts.
const (
	VerdictPass = "PASS"
	VerdictFail = "FAIL"
)

// ValidateOutput compares the expected dataset against the actual processor
// output, one verdict per expected record. Matching is keyed on playerName:
// the first actual record with the same name is the candidate, and every
// compared field must be equal (numeric equality across int/float widths,
// exact equality otherwise) for a PASS. A name absent from the actual
// output, or any field mismatch, is a FAIL. Rows the processor produced
// beyond the expected set are not reported here; the row-count discrepancy
// shows up as missing-name FAILs on the expected side.
//
// The verdict dataset is the expected records projected to comparedFields,
// sorted by playerName ascending, plus the Result column, and is
// snapshotted for post-mortem diffing.
func (h *Harness) ValidateOutput(expected, actual *dataset.Dataset) (*dataset.Dataset, error) {
	// First-match-wins index over the actual rows.
	index := make(map[string]records.Record, actual.Len())
	for _, row := range actual.Rows {
		name, ok := row.String("playerName")
		if !ok {
			continue
		}
		if _, seen := index[name]; !seen {
			index[name] = row
		}
	}

	rows := make([]records.Record, 0, expected.Len())
	for _, exp := range expected.Rows {
		rows = append(rows, h.verdictFor(exp, index))
	}
	verdicts := dataset.New(append(append([]string{}, comparedFields...), resultColumn), rows)
	// Stability keeps duplicate names in expected-input order.
	verdicts.SortByString("playerName")

	if err := h.persist(verdictSnapshot, verdicts); err != nil {
		return nil, err
	}
	return verdicts, nil
}

func (h *Harness) verdictFor(exp records.Record, index map[string]records.Record) records.Record {
	row := make(records.Record, len(comparedFields)+1)
	for _, field := range comparedFields {
		row[field] = exp[field]
	}

	row[resultColumn] = VerdictFail
	name, ok := exp.String("playerName")
	if !ok {
		return row
	}
	act, found := index[name]
	if !found {
		return row
	}
	for _, field := range comparedFields {
		if !records.EqualValue(exp[field], act[field]) {
			return row
		}
	}
	row[resultColumn] = VerdictPass
	return row
}
