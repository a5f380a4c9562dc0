// Package csv implements the tabular parser used for player input files and
// for the result files produced by the data processor under test. It wraps
// encoding/csv with header normalization, soft-skip handling of malformed
// rows, and optional numeric type inference.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"statcheck/internal/dataset"
	"statcheck/internal/parser"
	"statcheck/pkg/records"
)

var _ parser.Parser = (*Parser)(nil)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing ASCII spaces from each field value.
	TrimSpace bool

	// HeaderMap maps source header names to canonical column names. Headers
	// not present in the map are kept as-is (trimmed, BOM stripped).
	HeaderMap map[string]string

	// InferTypes converts numeric-looking cells to int or float64, the way
	// a permissive tabular reader types its columns. Input files are parsed
	// without it (the transformer owns coercion); result files are parsed
	// with it so actual cells carry comparable types.
	InferTypes bool
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\ufeff"

// Parse consumes CSV records from r and returns the resulting dataset along
// with the number of rows skipped due to parse errors or field-count
// mismatches. Rows with the wrong width are soft-failed and counted rather
// than aborting the read.
func (p *Parser) Parse(r io.Reader) (*dataset.Dataset, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}

	var headers []string
	var skipped int

	if p.opt.HasHeader {
		h, err := cr.Read()
		if err == io.EOF {
			return dataset.Empty(), 0, nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = normalizeHeaders(h, p.opt)
	}

	const logLimit = 400
	var rows []records.Record
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < logLimit {
				log.Printf("Skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}

		if headers == nil {
			headers = make([]string, len(row))
			for i := range headers {
				headers[i] = fmt.Sprintf("col_%d", i)
			}
		}
		if len(row) != len(headers) {
			if skipped < logLimit {
				log.Printf("Skipping row %d: incorrect number of fields (expected %d, got %d)", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[headers[i]] = p.cellValue(val)
		}
		rows = append(rows, rec)
	}

	if headers == nil {
		return dataset.Empty(), skipped, nil
	}
	return dataset.New(headers, rows), skipped, nil
}

// cellValue converts one raw field into a record cell. Empty cells become
// nil (missing); with InferTypes enabled, numeric text becomes int/float64.
func (p *Parser) cellValue(s string) any {
	if s == "" {
		return nil
	}
	if !p.opt.InferTypes {
		return s
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// normalizeHeaders produces canonical column names: trimmed, BOM stripped
// from the first cell, and renamed through HeaderMap when a mapping exists.
func normalizeHeaders(h []string, opt Options) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if opt.HeaderMap != nil {
			if m, ok := opt.HeaderMap[c]; ok {
				c = m
			}
		}
		res[i] = c
	}
	return res
}
