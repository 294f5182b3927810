// Package main provides a profiling wrapper for KALISim to identify
// performance bottlenecks in the crossbar model.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/kalisim/kali"
)

var (
	width      = flag.Int("n", 32, "Operand width in bits")
	schemeName = flag.String("scheme", "carry-save", "Carry scheme: sum-only or carry-save")
	iterations = flag.Int("iterations", 100, "Number of multiplications to run")
	seed       = flag.Int64("seed", 1, "Seed for the random operands")
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	duration   = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
)

func main() {
	flag.Parse()

	scheme, err := kali.ParseScheme(*schemeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	p, err := kali.NewPipeline(*width, kali.WithScheme(scheme))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			atexit.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			atexit.Exit(1)
		}
		atexit.Register(func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		})
	}

	fmt.Printf("Crossbar: %dx%d\n", p.Crossbar().Rows(), p.Crossbar().Cols())
	fmt.Printf("Scheme: %v\n", scheme)

	// Set timeout
	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		atexit.Exit(2)
	}()

	rng := rand.New(rand.NewSource(*seed))
	mask := uint64(1)<<uint(*width) - 1

	var primitives uint64
	exact := 0
	start := time.Now()

	for i := 0; i < *iterations; i++ {
		p.Reset()
		r, err := p.Run(rng.Uint64()&mask, rng.Uint64()&mask)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			atexit.Exit(1)
		}
		primitives += r.Latency()
		if r.Exact() {
			exact++
		}
	}

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			atexit.Exit(1)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
		_ = f.Close()
	}

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Multiplications: %d (%d exact)\n", *iterations, exact)
	fmt.Printf("Primitives executed: %d\n", primitives)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if primitives > 0 {
		fmt.Printf("Primitives/second: %.0f\n", float64(primitives)/elapsed.Seconds())
	}

	atexit.Exit(0)
}
