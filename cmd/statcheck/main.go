package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"statcheck/internal/config"
	"statcheck/internal/harness"
	"statcheck/internal/metrics"
	"statcheck/internal/metrics/prompush"
)

// main is the entry point for the statcheck binary. It loads the harness
// config, optionally initializes a metrics backend, runs the full check,
// and exits non-zero when anything failed.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
		historyDSN        string
	)

	flag.StringVar(&cfgPath, "config", "", "harness config JSON path (defaults apply when empty)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (e.g. pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&historyDSN, "history-dsn", "", "SQLite DSN for the run history log (overrides config)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fatalf("%v", err)
		}
	}
	if metricsBackendFlg != "" {
		cfg.Metrics.Backend = metricsBackendFlg
	}
	if pushGatewayURLFlg != "" {
		cfg.Metrics.PushgatewayURL = pushGatewayURLFlg
	}
	if historyDSN != "" {
		cfg.History.DSN = historyDSN
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	setupMetrics(cfg, *verbose)

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("harness: input=%s output=%s temp=%s", cfg.Input.Dir, cfg.Output.Dir, cfg.Temp.Dir)
	}

	res, err := harness.New(cfg).Run(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}

	sum := res.Summary()
	fmt.Printf("Test Results: %d PASS, %d FAIL\n", sum.Pass, sum.Fail)
	if res.SchemaValid {
		fmt.Println("Schema validation: PASS")
	} else {
		fmt.Println("Schema validation: FAIL")
		for _, e := range res.SchemaErrors {
			fmt.Printf("  %s\n", e)
		}
	}

	if *verbose {
		log.Printf("completed in %s (fingerprint %s)", time.Since(start).Truncate(time.Millisecond), res.Fingerprint)
	}

	if err := metrics.Flush(); err != nil {
		log.Printf("metrics: flush error: %v", err)
	}
	if !res.OK() {
		os.Exit(1)
	}
}

// setupMetrics installs the configured backend: flag/config → env → nop.
func setupMetrics(cfg config.Config, verbose bool) {
	backendName := cfg.Metrics.Backend
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := cfg.Metrics.PushgatewayURL
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(cfg.Job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return
		}
		log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, backendName, cfg.Job)
		metrics.SetBackend(b)

	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
