package schema

import (
	"fmt"
	"strconv"

	"statcheck/internal/dataset"
)

// Check verifies the dataset against the contract. It returns whether the
// schema conforms plus one human-readable message per violating column, in
// contract order. Failures are reported, never raised: the caller gets the
// complete list of violations, not just the first.
//
// Integer columns are permissive: a value stored as a wider numeric type is
// accepted as long as it downcasts to an integer without loss, and numeric
// text counts too. String columns require actual string cells. Missing
// cells never violate a type — column presence is the separate check.
func Check(c Contract, ds *dataset.Dataset) (bool, []string) {
	var errs []string
	for _, f := range c.Fields {
		if !ds.HasColumn(f.Name) {
			errs = append(errs, fmt.Sprintf("Column '%s' is missing", f.Name))
			continue
		}
		if !columnConforms(ds, f) {
			errs = append(errs, fmt.Sprintf("Column '%s' should be %s type", f.Name, f.Type))
		}
	}
	return len(errs) == 0, errs
}

func columnConforms(ds *dataset.Dataset, f Field) bool {
	for _, row := range ds.Rows {
		v, ok := row[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Type {
		case "integer":
			if !isIntegral(v) {
				return false
			}
		case "string":
			if _, ok := v.(string); !ok {
				return false
			}
		}
	}
	return true
}

// isIntegral reports whether v holds (or downcasts to) an integer value.
func isIntegral(v any) bool {
	switch t := v.(type) {
	case int, int64:
		return true
	case float64:
		return t == float64(int64(t))
	case string:
		_, err := strconv.ParseInt(t, 10, 64)
		return err == nil
	default:
		return false
	}
}
