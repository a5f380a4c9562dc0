// Package probe samples an input CSV file and reports its header names with
// inferred SQL-like types. It is a diagnostic for the harness operator: run
// it against a player file to see how the pipeline will read it before a
// full run.
package probe

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Column is one probed column: the raw header, its canonical ASCII
// identifier, and the inferred type.
type Column struct {
	Header    string `json:"header"`
	Canonical string `json:"canonical"`
	Type      string `json:"type"`
}

// Options configures file probing.
type Options struct {
	// Delimiter is the CSV field delimiter; ',' when zero.
	Delimiter rune
	// MaxRows caps how many data rows are sampled; 1000 when zero.
	MaxRows int
}

// File samples path and returns one Column per header.
func File(path string, opt Options) ([]Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("probe: open %s: %w", path, err)
	}
	defer f.Close()
	return Sample(f, opt)
}

// Sample reads a header row plus up to MaxRows data rows from r and infers
// a type per column. Malformed and misaligned rows are skipped so inference
// stays aligned with the header.
func Sample(r io.Reader, opt Options) ([]Column, error) {
	cr := csv.NewReader(r)
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // allow variable fields; width enforced below

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("probe: read header: %w", err)
	}
	headers = stripUTF8BOM(headers)

	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = 1000
	}

	cols := make([][]string, len(headers))
	for n := 0; n < maxRows; {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) != len(headers) {
			continue // skip malformed/misaligned row to keep inference accurate
		}
		for i, v := range rec {
			cols[i] = append(cols[i], v)
		}
		n++
	}

	out := make([]Column, len(headers))
	for i, h := range headers {
		out[i] = Column{
			Header:    h,
			Canonical: NormalizeFieldName(h),
			Type:      inferTypeForColumn(cols[i]),
		}
	}
	return out, nil
}

// stripUTF8BOM removes a UTF-8 BOM from the first header field if present.
func stripUTF8BOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	return headers
}

// NormalizeFieldName converts arbitrary header text into a lowercase ASCII
// identifier suitable for SQL schemas:
//  1. lowercase
//  2. strip accents (NFD → remove Mn → NFC)
//  3. keep [a-z0-9_]; convert space/dash/dot to underscore; drop others
//  4. fallback to "col" if empty
func NormalizeFieldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// Decompose → remove nonspacing marks (accents) → recompose.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, s)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		return "col"
	}
	return name
}

// inferTypeForColumn guesses a SQL-friendly type among:
// integer, real, boolean, date, text.
// Heuristic: require all non-empty values to satisfy a narrower type.
func inferTypeForColumn(values []string) string {
	nonEmpty := nonEmptyTrimmed(values)
	if len(nonEmpty) == 0 {
		return "text"
	}
	if allMatch(nonEmpty, isInt) {
		return "integer"
	}
	if allMatch(nonEmpty, isBool) {
		return "boolean"
	}
	if allMatch(nonEmpty, isFloat) {
		return "real"
	}
	if allMatch(nonEmpty, isDate) {
		return "date"
	}
	return "text"
}

func nonEmptyTrimmed(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func allMatch(vals []string, fn func(string) bool) bool {
	for _, v := range vals {
		if !fn(v) {
			return false
		}
	}
	return true
}

// isBool accepts common textual booleans and 1/0.
func isBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "t", "f", "yes", "no", "y", "n", "1", "0":
		return true
	default:
		return false
	}
}

// isInt requires a signed base-10 integer that fits in int64.
func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isFloat accepts decimal or scientific notation floats. Ints are NOT
// floats here, so integer columns stay integer.
func isFloat(s string) bool {
	if isInt(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var dateLayouts = []string{
	"2006-01-02", // ISO
	"02.01.2006", // DMY dot
	"02/01/2006", // DMY slash
	"2006/01/02", // ISO slashy
	time.RFC3339,
}

func isDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
