package builtin

import "statcheck/pkg/records"

// NumericRange keeps only records whose field lies in [Min, Max], both
// bounds inclusive. A missing or non-numeric field fails the predicate, so
// records with a malformed age are excluded here rather than by Require —
// the range filter is the one place that decides age validity.
type NumericRange struct {
	Field string
	Min   float64
	Max   float64
}

func (n NumericRange) Apply(in []records.Record) []records.Record {
	out := in[:0]
	for _, rec := range in {
		v, ok := rec.Number(n.Field)
		if ok && v >= n.Min && v <= n.Max {
			out = append(out, rec)
		}
	}
	return out
}
