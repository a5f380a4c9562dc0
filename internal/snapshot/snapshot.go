// Package snapshot persists pipeline datasets as CSV files under the temp
// root. Snapshots are a debugging aid, not a correctness dependency: each
// write is a one-shot overwrite of a fixed path, so re-running the pipeline
// replaces every snapshot instead of appending to it.
package snapshot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"statcheck/internal/dataset"
	"statcheck/pkg/records"
)

// Encode renders the dataset as CSV bytes: header row from the column
// layout, then one line per record with missing cells as empty fields.
// The encoding is deterministic, which makes fingerprints (and the
// merge-twice idempotence property) byte-level guarantees.
func Encode(ds *dataset.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("snapshot: write header: %w", err)
	}
	row := make([]string, len(ds.Columns))
	for _, rec := range ds.Rows {
		for i, col := range ds.Columns {
			row[i] = records.Format(rec[col])
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("snapshot: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("snapshot: flush: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteCSV encodes the dataset and overwrites path with it, creating the
// parent directory when needed.
func WriteCSV(path string, ds *dataset.Dataset) error {
	data, err := Encode(ds)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// Fingerprint hashes the dataset's CSV encoding. Two datasets with the same
// columns, rows, and order share a fingerprint.
func Fingerprint(ds *dataset.Dataset) (string, error) {
	data, err := Encode(ds)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxh3.Hash(data)), nil
}
