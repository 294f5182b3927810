package kali

import (
	"strings"

	"github.com/sarchlab/kalisim/crossbar"
)

// Result is the outcome of one multiplication.
type Result struct {
	A, B   uint64
	Width  int
	Scheme Scheme

	// ABits and BBits are the operands as mapped, most significant first.
	ABits, BBits []uint8

	// Bits maps every partition id (binary weight) to its final cell.
	Bits []crossbar.BitRef
	// Values holds the bits read from Bits.
	Values []uint8
	// Product is the sum of Values[w] << w.
	Product uint64

	Stages      []StageCost
	ScratchRows int

	// Stats is the crossbar cost at the end of the run.
	Stats crossbar.Stats

	// Crossbar is the pipeline's live crossbar, not a copy. Resetting or
	// rerunning the pipeline changes what it reports.
	Crossbar Handle
}

// Expected returns the arithmetic product A·B.
func (r *Result) Expected() uint64 {
	return r.A * r.B
}

// Exact reports whether the crossbar produced A·B.
func (r *Result) Exact() bool {
	return r.Product == r.Expected()
}

// Latency returns the number of primitive calls issued.
func (r *Result) Latency() uint64 {
	return r.Stats.Latency
}

// Energy returns the number of cells written by primitives.
func (r *Result) Energy() uint64 {
	return r.Stats.Energy
}

// BitString renders Values most significant bit first.
func (r *Result) BitString() string {
	var b strings.Builder
	for w := len(r.Values) - 1; w >= 0; w-- {
		b.WriteByte('0' + r.Values[w])
	}
	return b.String()
}
