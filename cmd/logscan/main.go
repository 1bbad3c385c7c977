// logscan summarizes a CSV log produced by the recorder: schema check, row
// counts by event type and asset, and latency distributions.
// Usage: go run ./cmd/logscan -file data/polymarket_book.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/clobwatch/polymarket-data/internal/model"
)

// colIndex maps column names to their position in model.Columns.
var colIndex = func() map[string]int {
	m := make(map[string]int, len(model.Columns))
	for i, name := range model.Columns {
		m[name] = i
	}
	return m
}()

type latencyStats struct {
	count int
	min   float64
	max   float64
	sum   float64
}

func (s *latencyStats) add(v float64) {
	if s.count == 0 || v < s.min {
		s.min = v
	}
	if s.count == 0 || v > s.max {
		s.max = v
	}
	s.sum += v
	s.count++
}

func (s *latencyStats) String() string {
	if s.count == 0 {
		return "no samples"
	}
	return fmt.Sprintf("min=%.3fms mean=%.3fms max=%.3fms n=%d",
		s.min, s.sum/float64(s.count), s.max, s.count)
}

func main() {
	file := flag.String("file", "data/polymarket_book.csv", "recorded CSV file to scan")
	flag.Parse()

	if err := run(*file); err != nil {
		fmt.Fprintf(os.Stderr, "logscan: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(model.Columns) {
		return fmt.Errorf("file has %d columns, want %d (schema v%d)",
			len(header), len(model.Columns), model.SchemaVersion)
	}
	for i, want := range model.Columns {
		if header[i] != want {
			return fmt.Errorf("column %d is %q, want %q (schema v%d)",
				i, header[i], want, model.SchemaVersion)
		}
	}

	byEvent := make(map[string]int)
	byAsset := make(map[string]int)
	var proc, net, e2e latencyStats
	var rows, truncated int

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("row %d: %w", rows+2, err)
		}

		rows++
		byEvent[row[colIndex["event_type"]]]++
		byAsset[row[colIndex["asset_id"]]]++

		addSample(&proc, row[colIndex["proc_latency_ms"]])
		addSample(&net, row[colIndex["net_latency_ms"]])
		addSample(&e2e, row[colIndex["e2e_latency_ms"]])

		if row[colIndex["raw_truncated"]] == "true" {
			truncated++
		}
	}

	fmt.Printf("file: %s\n", path)
	fmt.Printf("rows: %d (%d truncated payloads)\n", rows, truncated)

	fmt.Println("by event type:")
	for _, k := range sortedKeys(byEvent) {
		fmt.Printf("  %-16s %d\n", k, byEvent[k])
	}
	fmt.Println("by asset:")
	for _, k := range sortedKeys(byAsset) {
		fmt.Printf("  %-16s %d\n", k, byAsset[k])
	}

	fmt.Printf("proc latency: %s\n", proc.String())
	fmt.Printf("net latency:  %s\n", net.String())
	fmt.Printf("e2e latency:  %s\n", e2e.String())

	return nil
}

// addSample folds one latency cell into the stats. Empty cells mean the
// latency was not measurable for that row and are skipped.
func addSample(s *latencyStats, cell string) {
	if cell == "" {
		return
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return
	}
	s.add(v)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
