package parser

import (
	"io"

	"statcheck/internal/dataset"
)

// Parser turns raw bytes into a dataset, reporting how many rows were
// soft-skipped along the way.
type Parser interface {
	Parse(r io.Reader) (*dataset.Dataset, int, error)
}
