package benchmarks

import (
	"fmt"

	"github.com/sarchlab/kalisim/kali"
)

// ExhaustiveLimit is the widest operand swept exhaustively by
// GetStandardSweeps. Wider sweeps sample random pairs.
const ExhaustiveLimit = 6

// GetStandardSweeps returns sweeps for both schemes at widths 1 through 8,
// 16 and 32.
func GetStandardSweeps(samples int, seed int64) []Sweep {
	widths := []int{1, 2, 3, 4, 5, 6, 7, 8, 16, 32}
	schemes := []kali.Scheme{kali.SchemeSumOnly, kali.SchemeCarrySave}

	sweeps := make([]Sweep, 0, len(widths)*len(schemes))
	for _, scheme := range schemes {
		for _, w := range widths {
			sweeps = append(sweeps, WidthSweep(w, scheme, samples, seed))
		}
	}
	return sweeps
}

// WidthSweep returns the sweep for one width: exhaustive up to
// ExhaustiveLimit bits, otherwise samples random pairs.
func WidthSweep(width int, scheme kali.Scheme, samples int, seed int64) Sweep {
	s := Sweep{
		Name:   fmt.Sprintf("%s_n%d", scheme, width),
		Width:  width,
		Scheme: scheme,
		Seed:   seed,
	}

	if width <= ExhaustiveLimit {
		s.Exhaustive = true
		s.Description = fmt.Sprintf("all %d-bit operand pairs", width)
	} else {
		s.Samples = samples
		s.Description = fmt.Sprintf("%d random %d-bit operand pairs", samples, width)
	}

	return s
}
