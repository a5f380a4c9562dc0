// Package builtin contains the reusable transformers the processing stage is
// assembled from.
package builtin

import (
	"strconv"

	"statcheck/pkg/records"
)

// CoerceNumeric converts the named fields to numeric cells in place.
// String cells parse to int (or float64 when fractional); cells that cannot
// be coerced become missing (nil) rather than raising an error — bad data
// degrades to "absent" and later stages decide what absence means.
type CoerceNumeric struct {
	Fields []string
}

func (c CoerceNumeric) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for _, field := range c.Fields {
			v, ok := r[field]
			if !ok || v == nil {
				continue
			}
			r[field] = coerceNumeric(v)
		}
	}
	return in
}

func coerceNumeric(v any) any {
	switch t := v.(type) {
	case int, int64:
		return t
	case float64:
		if t == float64(int(t)) {
			return int(t)
		}
		return t
	case string:
		if i, err := strconv.Atoi(t); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
		return nil
	default:
		return nil
	}
}
