// Package records defines the Record type shared by every pipeline stage:
// a single player-event observation keyed by column name.
//
// Cells are deliberately loose (any): parsers produce strings, numeric
// inference and coercion produce int/float64, and a missing or uncoercible
// cell is nil. The typed accessors return a (value, ok) pair so "missing"
// stays a first-class outcome rather than a sentinel value.
package records

import "strconv"

// Record is one row: column name -> cell value. A nil value (or an absent
// key) means the cell is missing.
type Record map[string]any

// Clone returns a shallow copy of the record. Cell values are immutable
// scalars throughout the pipeline, so a shallow copy is sufficient for the
// copy-on-process contract.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether the cell exists and is non-nil.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Number returns the cell as a float64. It accepts int, int64, and float64
// cells; anything else (including numeric strings) is not a number here —
// run CoerceNumeric first if string cells should count.
func (r Record) Number(field string) (float64, bool) {
	switch v := r[field].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Int returns the cell as an int when it holds an integral numeric value.
func (r Record) Int(field string) (int, bool) {
	switch v := r[field].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}

// String returns the cell as a string.
func (r Record) String(field string) (string, bool) {
	s, ok := r[field].(string)
	return s, ok
}

// EqualValue compares two cell values the way the validator needs:
// numeric cells compare by value regardless of their concrete Go type
// (an int 600 from coercion equals a float64 600 from inference), strings
// compare exactly, and two missing cells are equal. Everything else falls
// back to interface equality.
func EqualValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	if sa, ok := a.(string); ok {
		sb, ok := b.(string)
		return ok && sa == sb
	}
	return a == b
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// Format renders a cell for CSV output. Missing cells render as the empty
// string; integral floats render without a fractional part so snapshots are
// byte-stable across int/float representations of the same value.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
