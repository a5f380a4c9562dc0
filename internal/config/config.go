// Package config defines the canonical, JSON-serializable configuration
// model for the harness. It is intentionally small and explicit: the three
// data roots are an explicit struct passed into the harness at construction,
// never ambient global state, and decoding is performed by the standard
// library.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level object decoded from a harness config file.
type Config struct {
	// Job names the run for metrics labeling and the history log.
	Job string `json:"job"`

	// Input is the root directory holding the two player input files.
	Input Dir `json:"input"`

	// Output is the root directory the processor under test writes to.
	Output Dir `json:"output"`

	// Temp is the root directory harness snapshots are written under.
	Temp Dir `json:"temp"`

	// DisableSnapshots turns off intermediate snapshot files. Snapshots are
	// a debugging aid; disabling them does not change pipeline semantics.
	DisableSnapshots bool `json:"disable_snapshots"`

	// History configures the optional SQLite run log. Empty DSN disables it.
	History History `json:"history"`

	// Metrics selects the metrics backend.
	Metrics Metrics `json:"metrics"`
}

// Dir wraps a directory path so each root reads explicitly in JSON.
type Dir struct {
	Dir string `json:"dir"`
}

// History configures the run-history sink.
type History struct {
	// DSN is passed to database/sql for the SQLite driver
	// (e.g. "statcheck.db" or "file:statcheck.db?cache=shared").
	DSN string `json:"dsn"`
}

// Metrics configures the metrics backend.
type Metrics struct {
	// Backend selects the implementation: "pushgateway" or "none"/empty.
	Backend string `json:"backend"`

	// PushgatewayURL is the Pushgateway base URL for the "pushgateway"
	// backend. Defaults to http://localhost:9091 when empty.
	PushgatewayURL string `json:"pushgateway_url"`
}

// Default returns the conventional layout: inputDataSet, outputDataSet,
// tempDataSet under the working directory, snapshots on, no history, no
// metrics.
func Default() Config {
	return Config{
		Job:    "statcheck",
		Input:  Dir{Dir: "inputDataSet"},
		Output: Dir{Dir: "outputDataSet"},
		Temp:   Dir{Dir: "tempDataSet"},
	}
}

// Load reads path and decodes it over the defaults, so partial config files
// only need to name what they change.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Job == "" {
		cfg.Job = "statcheck"
	}
	return cfg, nil
}
