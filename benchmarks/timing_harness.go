// Package benchmarks sweeps KALI multiplications over operand widths and
// reports exactness, latency and energy.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/kalisim/kali"
	"github.com/sarchlab/kalisim/timing/cost"
)

// SweepResult holds the results of one sweep.
type SweepResult struct {
	// Name identifies the sweep
	Name string `json:"name"`

	// Description explains what the sweep covers
	Description string `json:"description"`

	Width  int    `json:"width"`
	Scheme string `json:"scheme"`

	// Runs is the number of operand pairs multiplied
	Runs int `json:"runs"`

	// Exact is the number of runs whose product equalled A·B
	Exact int `json:"exact"`

	// ExactPercent is Exact as a percentage of Runs
	ExactPercent float64 `json:"exact_percent"`

	// Latency and Energy are per multiplication. They depend only on the
	// width and the scheme, so every run of a sweep reports the same values.
	Latency uint64 `json:"latency"`
	Energy  uint64 `json:"energy"`

	Rows        int `json:"rows"`
	Cols        int `json:"cols"`
	ScratchRows int `json:"scratch_rows"`

	// Estimated physical cost of one multiplication
	Cycles   uint64  `json:"cycles"`
	TimeNs   float64 `json:"time_ns"`
	EnergyPJ float64 `json:"energy_pj"`

	// FirstMismatch is the first operand pair with an inexact product
	FirstMismatch *Mismatch `json:"first_mismatch,omitempty"`

	// WallTime is the actual time taken to run the sweep
	WallTime time.Duration `json:"wall_time_ns"`
}

// Mismatch records an inexact product.
type Mismatch struct {
	A       uint64 `json:"a"`
	B       uint64 `json:"b"`
	Product uint64 `json:"product"`
}

// Sweep defines a set of multiplications at one width.
type Sweep struct {
	// Name identifies the sweep
	Name string

	// Description explains what the sweep covers
	Description string

	Width  int
	Scheme kali.Scheme

	// Exhaustive runs every operand pair. Otherwise Samples random pairs
	// are drawn from a source seeded with Seed.
	Exhaustive bool
	Samples    int
	Seed       int64
}

// HarnessConfig configures the sweep harness.
type HarnessConfig struct {
	// CostConfig converts counters into cycles, time and energy
	CostConfig *cost.CostConfig

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// Verbose prints every inexact product
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		CostConfig: cost.DefaultCostConfig(),
		Output:     os.Stdout,
		Verbose:    false,
	}
}

// Harness runs sweeps and reports results.
type Harness struct {
	config HarnessConfig
	model  *cost.Model
	sweeps []Sweep
}

// NewHarness creates a new sweep harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.CostConfig == nil {
		config.CostConfig = cost.DefaultCostConfig()
	}
	return &Harness{
		config: config,
		model:  cost.NewModelWithConfig(config.CostConfig),
		sweeps: []Sweep{},
	}
}

// AddSweep adds a sweep to the harness.
func (h *Harness) AddSweep(s Sweep) {
	h.sweeps = append(h.sweeps, s)
}

// AddSweeps adds multiple sweeps to the harness.
func (h *Harness) AddSweeps(sweeps []Sweep) {
	h.sweeps = append(h.sweeps, sweeps...)
}

// RunAll executes all sweeps and returns results.
func (h *Harness) RunAll() ([]SweepResult, error) {
	results := make([]SweepResult, 0, len(h.sweeps))

	for _, s := range h.sweeps {
		result, err := h.runSweep(s)
		if err != nil {
			return results, fmt.Errorf("sweep %s: %w", s.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (h *Harness) runSweep(s Sweep) (SweepResult, error) {
	p, err := kali.NewPipeline(s.Width, kali.WithScheme(s.Scheme))
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{
		Name:        s.Name,
		Description: s.Description,
		Width:       s.Width,
		Scheme:      s.Scheme.String(),
		Rows:        p.Crossbar().Rows(),
		Cols:        p.Crossbar().Cols(),
	}

	start := time.Now()
	err = forEachPair(s, func(a, b uint64) error {
		p.Reset()
		r, err := p.Run(a, b)
		if err != nil {
			return err
		}

		result.Runs++
		if r.Exact() {
			result.Exact++
		} else {
			if result.FirstMismatch == nil {
				result.FirstMismatch = &Mismatch{A: a, B: b, Product: r.Product}
			}
			if h.config.Verbose {
				_, _ = fmt.Fprintf(h.config.Output, "  %s: %d*%d = %d, got %d\n",
					s.Name, a, b, r.Expected(), r.Product)
			}
		}

		result.Latency = r.Latency()
		result.Energy = r.Energy()
		result.ScratchRows = r.ScratchRows
		return nil
	})
	result.WallTime = time.Since(start)
	if err != nil {
		return SweepResult{}, err
	}

	if result.Runs > 0 {
		result.ExactPercent = 100 * float64(result.Exact) / float64(result.Runs)
	}

	est := h.model.Estimate(p.Crossbar().Stats())
	result.Cycles = est.Cycles
	result.TimeNs = float64(est.Time) * 1e9
	result.EnergyPJ = est.EnergyPJ

	return result, nil
}

func forEachPair(s Sweep, fn func(a, b uint64) error) error {
	if s.Exhaustive {
		limit := uint64(1) << uint(s.Width)
		for a := uint64(0); a < limit; a++ {
			for b := uint64(0); b < limit; b++ {
				if err := fn(a, b); err != nil {
					return err
				}
			}
		}
		return nil
	}

	rng := rand.New(rand.NewSource(s.Seed))
	mask := uint64(1)<<uint(s.Width) - 1
	for i := 0; i < s.Samples; i++ {
		if err := fn(rng.Uint64()&mask, rng.Uint64()&mask); err != nil {
			return err
		}
	}
	return nil
}

// PrintResults outputs sweep results as a table.
func (h *Harness) PrintResults(results []SweepResult) {
	t := table.NewWriter()
	t.SetOutputMirror(h.config.Output)
	t.SetTitle("KALI Sweep Results")
	t.AppendHeader(table.Row{
		"Sweep", "Scheme", "N", "Runs", "Exact", "Exact %",
		"Latency", "Energy", "Rows", "Time (ns)", "Energy (pJ)", "Wall Time",
	})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.Name, r.Scheme, r.Width, r.Runs, r.Exact,
			fmt.Sprintf("%.1f", r.ExactPercent),
			r.Latency, r.Energy, r.Rows,
			fmt.Sprintf("%.3f", r.TimeNs),
			fmt.Sprintf("%.3f", r.EnergyPJ),
			r.WallTime.Round(time.Microsecond),
		})
	}

	t.Render()
}

// PrintCSV outputs sweep results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []SweepResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,scheme,width,runs,exact,latency,energy,rows,cols,scratch_rows,cycles,time_ns,energy_pj")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%s,%d,%d,%d,%d,%d,%d,%d,%d,%d,%.3f,%.3f\n",
			r.Name,
			r.Scheme,
			r.Width,
			r.Runs,
			r.Exact,
			r.Latency,
			r.Energy,
			r.Rows,
			r.Cols,
			r.ScratchRows,
			r.Cycles,
			r.TimeNs,
			r.EnergyPJ,
		)
	}
}

// PrintJSON outputs sweep results as an indented JSON array.
func (h *Harness) PrintJSON(results []SweepResult) error {
	enc := json.NewEncoder(h.config.Output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
