// Package harness drives the end-to-end check of the cricket data
// processor: it rebuilds the expected result from the raw player inputs,
// reads what the processor actually produced, and compares the two row by
// row, with an independent schema conformance check on the actual output.
package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"statcheck/internal/config"
	"statcheck/internal/dataset"
	"statcheck/internal/history"
	"statcheck/internal/metrics"
	csvparser "statcheck/internal/parser/csv"
	jsonparser "statcheck/internal/parser/json"
	"statcheck/internal/schema"
	"statcheck/internal/snapshot"
	"statcheck/internal/transformer"
	"statcheck/internal/transformer/builtin"
)

// Fixed file names under the configured roots.
const (
	csvInputFile  = "players_1990_2000.csv"
	jsonInputFile = "players_2000_onwards.json"

	testResultsFile = "test_results.csv"
	odiResultsFile  = "odi_results.csv"

	mergedSnapshot    = "merged_data.csv"
	processedSnapshot = "processed_data.csv"
	verdictSnapshot   = "test_result.csv"
)

// Age bounds for a plausible active player.
const (
	minAge = 15
	maxAge = 50
)

// Harness wires the pipeline stages together over an explicit Config.
type Harness struct {
	cfg config.Config
}

// New constructs a Harness. The config carries the three data roots; there
// is no ambient path state.
func New(cfg config.Config) *Harness {
	return &Harness{cfg: cfg}
}

// ReadCSVData loads the 1990–2000 player file. A missing or unreadable file
// is fatal: without an input there is nothing to test.
func (h *Harness) ReadCSVData() (*dataset.Dataset, error) {
	path := filepath.Join(h.cfg.Input.Dir, csvInputFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read csv input: %w", err)
	}
	defer f.Close()

	p := csvparser.NewParser(csvparser.Options{HasHeader: true, TrimSpace: true})
	ds, _, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read csv input %s: %w", path, err)
	}
	return ds, nil
}

// ReadJSONData loads the 2000-onwards player file: a top-level array of
// homogeneous objects, one record per element. Malformed JSON is fatal.
func (h *Harness) ReadJSONData() (*dataset.Dataset, error) {
	path := filepath.Join(h.cfg.Input.Dir, jsonInputFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read json input: %w", err)
	}
	defer f.Close()

	ds, err := jsonparser.DecodeAll(f, jsonparser.Options{AllowArrays: true})
	if err != nil {
		return nil, fmt.Errorf("read json input %s: %w", path, err)
	}
	return ds, nil
}

// MergeData concatenates the two input datasets — CSV rows first, then JSON
// rows, no deduplication — and snapshots the result. Columns known to only
// one source stay, reading as missing for rows from the other.
func (h *Harness) MergeData() (*dataset.Dataset, error) {
	csvData, err := h.ReadCSVData()
	if err != nil {
		return nil, err
	}
	jsonData, err := h.ReadJSONData()
	if err != nil {
		return nil, err
	}

	merged := dataset.Concat(csvData, jsonData)
	if err := h.persist(mergedSnapshot, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// ProcessData turns the merged dataset into the expected result. It
// operates on a copy:
//
//  1. coerce runs, wickets, and age to numbers (uncoercible -> missing)
//  2. drop records missing runs or wickets
//  3. keep ages in [15, 50]; a missing age fails this predicate, so a
//     malformed age excludes the record here rather than in step 2
//  4. classify each survivor into playerType
//
// The result is snapshotted and returned; the input dataset is not mutated.
func (h *Harness) ProcessData(data *dataset.Dataset) (*dataset.Dataset, error) {
	processed := data.Clone()

	chain := transformer.Chain{
		builtin.CoerceNumeric{Fields: []string{"runs", "wickets", "age"}},
		builtin.Require{Fields: []string{"runs", "wickets"}},
		builtin.NumericRange{Field: "age", Min: minAge, Max: maxAge},
		builtin.Classify{RunsField: "runs", WicketsField: "wickets", Target: "playerType"},
	}
	processed.Rows = chain.Apply(processed.Rows)
	if !processed.HasColumn("playerType") {
		processed.Columns = append(processed.Columns, "playerType")
	}

	if err := h.persist(processedSnapshot, processed); err != nil {
		return nil, err
	}
	return processed, nil
}

// ReadOutputData loads the processor's two result files and concatenates
// them, test rows first. A missing file is an empty dataset, not an error:
// the processor may legitimately produce no rows for one category. Cells
// are type-inferred so they compare against coerced expected cells.
func (h *Harness) ReadOutputData() (*dataset.Dataset, error) {
	testData, err := h.readOutputFile(testResultsFile)
	if err != nil {
		return nil, err
	}
	odiData, err := h.readOutputFile(odiResultsFile)
	if err != nil {
		return nil, err
	}
	return dataset.Concat(testData, odiData), nil
}

func (h *Harness) readOutputFile(name string) (*dataset.Dataset, error) {
	path := filepath.Join(h.cfg.Output.Dir, name)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return dataset.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	defer f.Close()

	p := csvparser.NewParser(csvparser.Options{HasHeader: true, TrimSpace: true, InferTypes: true})
	ds, _, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read output %s: %w", path, err)
	}
	return ds, nil
}

// CheckSchema verifies the actual output against the fixed player-results
// contract. All violations are reported; nothing is thrown.
func (h *Harness) CheckSchema(data *dataset.Dataset) (bool, []string) {
	return schema.Check(schema.PlayerResults(), data)
}

// Run executes the full pipeline: merge, process, read output, validate,
// check schema. There is no mid-pipeline recovery — a failing stage fails
// the run — while validation and schema findings are data in the Result.
// When a history DSN is configured the run is also appended to the run log.
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	started := time.Now()

	merged, err := h.timed("merge", h.MergeData)
	if err != nil {
		return nil, err
	}
	metrics.RecordRows(h.cfg.Job, "merged", int64(merged.Len()))

	processed, err := h.timed("process", func() (*dataset.Dataset, error) { return h.ProcessData(merged) })
	if err != nil {
		return nil, err
	}
	metrics.RecordRows(h.cfg.Job, "processed", int64(processed.Len()))
	metrics.RecordRows(h.cfg.Job, "dropped", int64(merged.Len()-processed.Len()))

	output, err := h.timed("read_output", h.ReadOutputData)
	if err != nil {
		return nil, err
	}

	validation, err := h.timed("validate", func() (*dataset.Dataset, error) {
		return h.ValidateOutput(processed, output)
	})
	if err != nil {
		return nil, err
	}

	schemaValid, schemaErrs := h.CheckSchema(output)

	res := &Result{
		Validation:   validation,
		SchemaValid:  schemaValid,
		SchemaErrors: schemaErrs,
	}
	res.Fingerprint, err = snapshot.Fingerprint(merged)
	if err != nil {
		return nil, err
	}

	sum := res.Summary()
	metrics.RecordRows(h.cfg.Job, "pass", int64(sum.Pass))
	metrics.RecordRows(h.cfg.Job, "fail", int64(sum.Fail))
	metrics.RecordRows(h.cfg.Job, "schema_errors", int64(len(schemaErrs)))

	if h.cfg.History.DSN != "" {
		if err := h.appendHistory(ctx, started, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (h *Harness) appendHistory(ctx context.Context, started time.Time, res *Result) error {
	store, closeFn, err := history.Open(ctx, h.cfg.History.DSN)
	if err != nil {
		return err
	}
	defer closeFn()

	sum := res.Summary()
	_, err = store.Record(ctx, history.Run{
		StartedAt:   started,
		Duration:    time.Since(started),
		PassCount:   sum.Pass,
		FailCount:   sum.Fail,
		SchemaValid: res.SchemaValid,
		SchemaErrs:  res.SchemaErrors,
		Fingerprint: res.Fingerprint,
	})
	return err
}

// timed wraps one pipeline stage with duration/status metrics.
func (h *Harness) timed(stage string, fn func() (*dataset.Dataset, error)) (*dataset.Dataset, error) {
	start := time.Now()
	ds, err := fn()
	metrics.RecordStage(h.cfg.Job, stage, err, time.Since(start))
	return ds, err
}

// persist snapshots a dataset under the temp root unless snapshots are
// disabled. Downstream stages consume the in-memory value either way.
func (h *Harness) persist(name string, ds *dataset.Dataset) error {
	if h.cfg.DisableSnapshots {
		return nil
	}
	return snapshot.WriteCSV(filepath.Join(h.cfg.Temp.Dir, name), ds)
}
