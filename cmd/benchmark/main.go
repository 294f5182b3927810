// Command benchmark runs the KALISim sweep harness over the standard widths.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv        Output results in CSV format (default: human-readable)
//	-json       Output results in JSON format
//	-samples    Random pairs per sweep above the exhaustive width limit
//	-seed       Seed for the random sweeps
//	-config     Path to cost configuration JSON file
//
// Example:
//
//	# Run all sweeps with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/kalisim/benchmarks"
	"github.com/sarchlab/kalisim/timing/cost"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	samples := flag.Int("samples", 100, "Random pairs per sweep above the exhaustive width limit")
	seed := flag.Int64("seed", 1, "Seed for the random sweeps")
	configPath := flag.String("config", "", "Path to cost configuration JSON file")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.Output = os.Stdout
	if *configPath != "" {
		costConfig, err := cost.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading cost config: %v\n", err)
			atexit.Exit(1)
		}
		config.CostConfig = costConfig
	}

	harness := benchmarks.NewHarness(config)
	harness.AddSweeps(benchmarks.GetStandardSweeps(*samples, *seed))

	human := !*csvOutput && !*jsonOutput
	if human {
		fmt.Println("KALISim Sweep Harness")
		fmt.Println("=====================")
		fmt.Printf("Exhaustive up to: %d bits\n", benchmarks.ExhaustiveLimit)
		fmt.Printf("Random samples:   %d (seed %d)\n", *samples, *seed)
		fmt.Println("")
	}

	results, err := harness.RunAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			atexit.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)

		fmt.Println("")
		fmt.Println("Expected characteristics:")
		fmt.Println("- sum-only: exact only for 1-bit operands, carries are discarded")
		fmt.Println("- carry-save: exact for every pair, at a higher latency and row count")
		fmt.Println("- latency and energy depend on width and scheme, never on operand values")
	}

	atexit.Exit(0)
}
