// Package main provides the entry point for KALISim.
// KALISim multiplies unsigned integers on a simulated memristor crossbar and
// reports the latency and energy of the NOR-only schedule.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/kalisim/benchmarks"
	"github.com/sarchlab/kalisim/kali"
	"github.com/sarchlab/kalisim/report"
	"github.com/sarchlab/kalisim/timing/cost"
	"github.com/sarchlab/kalisim/trace"
)

type options struct {
	a, b       uint64
	width      int
	scheme     string
	rows, cols int
	configPath string
	verbose    bool
	tracePath  string
	state      bool

	sweep   bool
	samples int
	seed    int64
	csv     bool
	json    bool
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.Uint64Var(&o.a, "a", 5, "Multiplicand")
	fs.Uint64Var(&o.b, "b", 3, "Multiplier")
	fs.IntVar(&o.width, "n", 4, "Operand width in bits (1-32)")
	fs.StringVar(&o.scheme, "scheme", "sum-only", "Carry scheme: sum-only or carry-save")
	fs.IntVar(&o.rows, "rows", 0, "Crossbar rows (0 = exact requirement, single runs only)")
	fs.IntVar(&o.cols, "cols", 0, "Crossbar columns (0 = exact requirement, single runs only)")
	fs.StringVar(&o.configPath, "config", "", "Path to cost configuration JSON file")
	fs.BoolVar(&o.verbose, "v", false, "Verbose output")
	fs.StringVar(&o.tracePath, "trace", "", "Write a JSON trace of every primitive to this file (single runs only)")
	fs.BoolVar(&o.state, "state", false, "Print the final crossbar state (single runs only)")
	fs.BoolVar(&o.sweep, "sweep", false, "Sweep operand pairs at the given width instead of a single run")
	fs.IntVar(&o.samples, "samples", 100, "Random pairs per sweep when the width is too large to be exhaustive")
	fs.Int64Var(&o.seed, "seed", 1, "Seed for random sweeps")
	fs.BoolVar(&o.csv, "csv", false, "Output sweep results in CSV format")
	fs.BoolVar(&o.json, "json", false, "Output sweep results in JSON format")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.sweep && (o.tracePath != "" || o.state || o.rows != 0 || o.cols != 0) {
		return o, fmt.Errorf("-trace, -state, -rows and -cols apply to single runs only, not -sweep")
	}
	return o, nil
}

func main() {
	fs := flag.NewFlagSet("kalisim", flag.ExitOnError)
	opts, err := parseFlags(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		atexit.Exit(2)
	}

	if opts.verbose {
		start := time.Now()
		atexit.Register(func() {
			fmt.Fprintf(os.Stderr, "Wall time: %v\n", time.Since(start))
		})
	}

	atexit.Exit(run(opts, os.Stdout, os.Stderr))
}

func run(opts options, stdout, stderr io.Writer) int {
	costConfig := cost.DefaultCostConfig()
	if opts.configPath != "" {
		var err error
		costConfig, err = cost.LoadConfig(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading cost config: %v\n", err)
			return 1
		}
	}
	if err := costConfig.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid cost config: %v\n", err)
		return 1
	}

	scheme, err := kali.ParseScheme(opts.scheme)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.sweep {
		return runSweep(opts, scheme, costConfig, stdout, stderr)
	}
	return runSingle(opts, scheme, costConfig, stdout, stderr)
}

// runSingle performs one multiplication and prints its report.
func runSingle(
	opts options,
	scheme kali.Scheme,
	costConfig *cost.CostConfig,
	stdout, stderr io.Writer,
) int {
	pipeOpts := []kali.PipelineOption{kali.WithScheme(scheme)}
	if opts.rows != 0 || opts.cols != 0 {
		rows, cols := opts.rows, opts.cols
		if rows == 0 {
			var err error
			rows, err = kali.RequiredRows(opts.width, scheme)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				return 1
			}
		}
		if cols == 0 {
			cols = kali.RequiredCols(opts.width)
		}
		pipeOpts = append(pipeOpts, kali.WithCrossbarSize(rows, cols))
	}

	if opts.tracePath != "" {
		f, err := os.Create(opts.tracePath)
		if err != nil {
			fmt.Fprintf(stderr, "Error creating trace file: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()

		handler := slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: trace.LevelTrace,
		})
		pipeOpts = append(pipeOpts, kali.WithHook(trace.NewTracer(slog.New(handler))))
	}

	p, err := kali.NewPipeline(opts.width, pipeOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.verbose {
		l := p.Layout()
		fmt.Fprintf(stdout, "Crossbar: %dx%d\n", p.Crossbar().Rows(), p.Crossbar().Cols())
		fmt.Fprintf(stdout, "Partial products: rows %d-%d\n", l.ProductStart, l.ProductEnd()-1)
		fmt.Fprintf(stdout, "Scheme: %v\n\n", scheme)
	}

	r, err := p.Run(opts.a, opts.b)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	model := cost.NewModelWithConfig(costConfig)
	fmt.Fprintln(stdout, report.Summary(r, model))
	fmt.Fprintln(stdout, report.Stages(r.Stages, model))
	if opts.state {
		fmt.Fprintln(stdout, report.State(r.Crossbar, !opts.verbose))
	}

	return 0
}

// runSweep multiplies many operand pairs at one width.
func runSweep(
	opts options,
	scheme kali.Scheme,
	costConfig *cost.CostConfig,
	stdout, stderr io.Writer,
) int {
	config := benchmarks.DefaultConfig()
	config.CostConfig = costConfig
	config.Output = stdout
	config.Verbose = opts.verbose

	harness := benchmarks.NewHarness(config)
	harness.AddSweep(benchmarks.WidthSweep(opts.width, scheme, opts.samples, opts.seed))

	results, err := harness.RunAll()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	switch {
	case opts.json:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	case opts.csv:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	return 0
}
