package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"statcheck/internal/probe"
)

var (
	flagFile      = flag.String("file", "inputDataSet/players_1990_2000.csv", "Path of the CSV file to sample")
	flagRows      = flag.Int("rows", 1000, "Number of rows to sample from the start of the file")
	flagDelimiter = flag.String("delimiter", ",", "CSV field delimiter (single character)")
	flagJSON      = flag.Bool("json", false, "Output the column report as JSON instead of text")
)

// statprobe samples a player CSV and reports each column's canonical name
// and inferred type. Useful for eyeballing a new dataset before pointing
// the harness at it.
func main() {
	flag.Parse()

	delim := ','
	if *flagDelimiter != "" {
		if r, _ := utf8.DecodeRuneInString(*flagDelimiter); r != utf8.RuneError {
			delim = r
		}
	}

	cols, err := probe.File(*flagFile, probe.Options{
		Delimiter: delim,
		MaxRows:   *flagRows,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cols); err != nil {
			log.Fatalf("encode: %v", err)
		}
		return
	}
	for _, c := range cols {
		fmt.Printf("%s\t%s\t%s\n", c.Header, c.Canonical, c.Type)
	}
}
