// +build ignore

// generate_testdata.go creates standard outline datasets for benchmarking.
// Usage: go run scripts/generate_testdata.go
//
// Creates:
//   tests/testdata/benchmark/small.jsonl   (100 entries)
//   tests/testdata/benchmark/medium.jsonl  (1000 entries)
//   tests/testdata/benchmark/large.jsonl   (5000 entries)
//   tests/testdata/benchmark/huge.jsonl    (20000 entries)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/trellis/pkg/model"
	"github.com/vanderheijden86/trellis/pkg/testutil"
)

type datasetSpec struct {
	name string
	size int
	desc string
}

var datasets = []datasetSpec{
	{"small", 100, "100 entries, random parent-linked tree"},
	{"medium", 1000, "1000 entries, random parent-linked tree"},
	{"large", 5000, "5000 entries, random parent-linked tree"},
	{"huge", 20000, "20000 entries, random parent-linked tree"},
}

func main() {
	outputDir := "tests/testdata/benchmark"

	for _, ds := range datasets {
		fmt.Printf("Generating %s dataset (%d entries)...\n", ds.name, ds.size)

		cfg := testutil.GeneratorConfig{
			Seed:      int64(ds.size), // Reproducible per-size
			IDPrefix:  "bench",
			WithSizes: true,
			WithNotes: true,
			StatusMix: []model.Status{model.StatusTodo, model.StatusActive, model.StatusBlocked, model.StatusDone},
			KindMix:   []model.Kind{model.KindTask, model.KindNote, model.KindLink},
		}

		gen := testutil.New(cfg)
		entries := gen.Random(ds.size)

		roots := 0
		for _, e := range entries {
			if e.ParentID == "" {
				roots++
			}
		}

		outputPath := filepath.Join(outputDir, ds.name+".jsonl")
		if err := testutil.WriteJSONL(outputPath, entries); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d entries, %d roots)\n", outputPath, len(entries), roots)
	}

	fmt.Println("\nDone! Test datasets created in", outputDir)
}
