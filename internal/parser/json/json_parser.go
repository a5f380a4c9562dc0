// Package json implements the structured-document parser for player input:
// a top-level JSON array of homogeneous objects, one record per element.
//
// Column order matters downstream (snapshots, schema reporting), and Go maps
// would lose it, so objects are decoded token-by-token: keys are recorded in
// document order and the first record fixes the column layout, later records
// appending any new keys in order of first appearance.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"statcheck/internal/dataset"
	"statcheck/pkg/records"
)

// Options configures JSON decoding.
type Options struct {
	// AllowArrays accepts a top-level array of objects. The player input
	// file is exactly that shape; without the flag a top-level array is an
	// error, matching a stricter NDJSON-only stance.
	AllowArrays bool
}

// DecodeAll reads every object from r and returns them as a dataset.
//
// Accepted shapes:
//
//	[{"a":1},{"a":2}]   (requires AllowArrays)
//	{"a":1}{"a":2}      (stream of objects / NDJSON)
//
// Numbers decode to int when integral, float64 otherwise. JSON null becomes
// a missing cell. Malformed input fails the whole read.
func DecodeAll(r io.Reader, opt Options) (*dataset.Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var cols []string
	seen := make(map[string]struct{})
	var rows []records.Record

	tok, err := dec.Token()
	if err == io.EOF {
		return dataset.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("json parser: decode: %w", err)
	}

	switch d := tok.(type) {
	case json.Delim:
		switch d {
		case '[':
			if !opt.AllowArrays {
				return nil, fmt.Errorf("json parser: top-level array encountered but allow_arrays=false")
			}
			for i := 0; dec.More(); i++ {
				rec, err := decodeObject(dec, &cols, seen)
				if err != nil {
					return nil, fmt.Errorf("json parser: element %d: %w", i, err)
				}
				rows = append(rows, rec)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("json parser: close array: %w", err)
			}
		case '{':
			// Stream of bare objects; the opening brace is already consumed.
			rec, err := decodeObjectBody(dec, &cols, seen)
			if err != nil {
				return nil, fmt.Errorf("json parser: %w", err)
			}
			rows = append(rows, rec)
			for {
				tok, err := dec.Token()
				if err == io.EOF {
					break
				}
				if err != nil {
					return nil, fmt.Errorf("json parser: decode: %w", err)
				}
				if d, ok := tok.(json.Delim); !ok || d != '{' {
					return nil, fmt.Errorf("json parser: unsupported top-level JSON token %v", tok)
				}
				rec, err := decodeObjectBody(dec, &cols, seen)
				if err != nil {
					return nil, fmt.Errorf("json parser: %w", err)
				}
				rows = append(rows, rec)
			}
		default:
			return nil, fmt.Errorf("json parser: unsupported top-level JSON delimiter %q", d)
		}
	default:
		return nil, fmt.Errorf("json parser: unsupported top-level JSON type %T", tok)
	}

	return dataset.New(cols, rows), nil
}

// decodeObject consumes one full object, opening brace included.
func decodeObject(dec *json.Decoder, cols *[]string, seen map[string]struct{}) (records.Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("element is not an object (got %v)", tok)
	}
	return decodeObjectBody(dec, cols, seen)
}

// decodeObjectBody reads key/value pairs up to and including the closing
// brace, recording previously unseen keys in document order.
func decodeObjectBody(dec *json.Decoder, cols *[]string, seen map[string]struct{}) (records.Record, error) {
	rec := records.Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string (got %v)", keyTok)
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode value for %q: %w", key, err)
		}
		rec[key] = cellValue(raw)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			*cols = append(*cols, key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("close object: %w", err)
	}
	return rec, nil
}

// cellValue maps a decoded JSON value onto a record cell: null to missing,
// integral numbers to int, other numbers to float64.
func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
