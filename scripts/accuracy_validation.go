// Package main provides accuracy validation for the crossbar model.
// Ensures that optimizations preserve simulation correctness.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"reflect"

	"github.com/sarchlab/kalisim/crossbar"
	"github.com/sarchlab/kalisim/kali"
)

// testCellPrimitives validates that a cell-addressed NOR writes the same
// value at the same cost as the row-parallel NOR on a single column.
func testCellPrimitives() bool {
	fmt.Println("Testing cell primitive accuracy...")

	for v := 0; v < 4; v++ {
		a, b := uint8(v>>1), uint8(v&1)

		row, _ := crossbar.New(3, 1)
		cell, _ := crossbar.New(3, 1)
		for _, xb := range []*crossbar.Crossbar{row, cell} {
			_ = xb.Write(0, 0, a)
			_ = xb.Write(1, 0, b)
		}

		if err := row.NOR(0, 1, 2, []int{0}); err != nil {
			fmt.Printf("❌ Test case %d failed: %v\n", v, err)
			return false
		}
		if err := cell.NORCell(crossbar.Ref(0, 0), crossbar.Ref(1, 0), crossbar.Ref(2, 0)); err != nil {
			fmt.Printf("❌ Test case %d failed: %v\n", v, err)
			return false
		}

		if !reflect.DeepEqual(row.State(), cell.State()) || row.Stats() != cell.Stats() {
			fmt.Printf("❌ Test case %d failed: NOR mismatch\n", v)
			fmt.Printf("  row:  %v %+v\n", row.State(), row.Stats())
			fmt.Printf("  cell: %v %+v\n", cell.State(), cell.Stats())
			return false
		}

		fmt.Printf("✅ Test case %d: NOR(%d,%d) consistent\n", v, a, b)
	}

	return true
}

// testPipelineReuse validates that a reset pipeline behaves exactly like a
// fresh one.
func testPipelineReuse() bool {
	fmt.Println("\nTesting pipeline reuse accuracy...")

	pairs := [][2]uint64{{0, 0}, {5, 3}, {15, 15}, {9, 6}}

	for _, scheme := range []kali.Scheme{kali.SchemeSumOnly, kali.SchemeCarrySave} {
		reused, err := kali.NewPipeline(4, kali.WithScheme(scheme))
		if err != nil {
			fmt.Printf("❌ %v: %v\n", scheme, err)
			return false
		}

		for i, pair := range pairs {
			reused.Reset()
			r1, err := reused.Run(pair[0], pair[1])
			if err != nil {
				fmt.Printf("❌ %v test case %d failed: %v\n", scheme, i, err)
				return false
			}

			r2, err := kali.Multiply(pair[0], pair[1], 4, kali.WithScheme(scheme))
			if err != nil {
				fmt.Printf("❌ %v test case %d failed: %v\n", scheme, i, err)
				return false
			}

			if r1.Product != r2.Product ||
				r1.Stats != r2.Stats ||
				!reflect.DeepEqual(r1.Crossbar.State(), r2.Crossbar.State()) {
				fmt.Printf("❌ %v test case %d failed: reused pipeline diverged\n", scheme, i)
				return false
			}

			fmt.Printf("✅ %v test case %d: %d*%d → %d (latency %d)\n",
				scheme, i, pair[0], pair[1], r1.Product, r1.Latency())
		}
	}

	return true
}

// testCarrySaveExactness validates carry-save products on random operands.
func testCarrySaveExactness() bool {
	fmt.Println("\nTesting carry-save exactness...")

	rng := rand.New(rand.NewSource(1))

	for _, width := range []int{8, 16, 32} {
		p, err := kali.NewPipeline(width, kali.WithScheme(kali.SchemeCarrySave))
		if err != nil {
			fmt.Printf("❌ %d bits: %v\n", width, err)
			return false
		}

		mask := uint64(1)<<uint(width) - 1
		for i := 0; i < 10; i++ {
			a, b := rng.Uint64()&mask, rng.Uint64()&mask

			p.Reset()
			r, err := p.Run(a, b)
			if err != nil {
				fmt.Printf("❌ %d bits: %v\n", width, err)
				return false
			}
			if !r.Exact() {
				fmt.Printf("❌ %d bits: %d*%d = %d, got %d\n", width, a, b, a*b, r.Product)
				return false
			}
		}

		fmt.Printf("✅ %d bits: 10 random products exact\n", width)
	}

	return true
}

func main() {
	fmt.Println("KALISim Accuracy Validation")
	fmt.Println("===========================")

	allPassed := true

	if !testCellPrimitives() {
		allPassed = false
	}

	if !testPipelineReuse() {
		allPassed = false
	}

	if !testCarrySaveExactness() {
		allPassed = false
	}

	fmt.Println("\n===========================")
	if allPassed {
		fmt.Println("🎉 ALL ACCURACY TESTS PASSED")
		os.Exit(0)
	} else {
		fmt.Println("❌ ACCURACY TESTS FAILED")
		os.Exit(1)
	}
}
