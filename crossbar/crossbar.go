// Package crossbar models a memristor crossbar array that computes in place
// with NOR-family primitives.
//
// The array is a fixed grid of single-bit cells. Row-parallel primitives
// (NOT, NOR, COPY) act on a set of columns in one cycle; cell primitives
// (NOTCell, NORCell) combine cells that do not share a column. Every call
// costs one latency unit and one energy unit per cell written.
package crossbar

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

var (
	// ErrInvalidBitValue is returned when a cell is written with a value
	// other than 0 or 1.
	ErrInvalidBitValue = errors.New("invalid bit value")

	// ErrOutOfBounds is returned when an operation addresses a row or
	// column outside the array. The array never grows.
	ErrOutOfBounds = errors.New("row/column out of bounds")

	// ErrInvalidSize is returned when a crossbar is created with a
	// non-positive dimension.
	ErrInvalidSize = errors.New("invalid crossbar size")

	// ErrInvalidPrimitive is returned when a primitive names an unknown op
	// or its source and destination counts do not match the op's arity.
	ErrInvalidPrimitive = errors.New("invalid primitive")
)

// Crossbar is a rows x cols array of bits with two cost counters.
type Crossbar struct {
	*sim.HookableBase

	name  string
	rows  int
	cols  int
	cells []uint8
	stats Stats
}

// Option is a functional option for configuring a Crossbar.
type Option func(*Crossbar)

// WithName sets the name reported by Name.
func WithName(name string) Option {
	return func(c *Crossbar) {
		c.name = name
	}
}

// New creates a zeroed crossbar.
func New(rows, cols int, opts ...Option) (*Crossbar, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}

	c := &Crossbar{
		HookableBase: sim.NewHookableBase(),
		name:         "Crossbar",
		rows:         rows,
		cols:         cols,
		cells:        make([]uint8, rows*cols),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Name returns the crossbar name.
func (c *Crossbar) Name() string {
	return c.name
}

// Rows returns the number of rows.
func (c *Crossbar) Rows() int {
	return c.rows
}

// Cols returns the number of columns.
func (c *Crossbar) Cols() int {
	return c.cols
}

// Contains reports whether ref addresses a cell of the array.
func (c *Crossbar) Contains(ref BitRef) bool {
	return ref.Row >= 0 && ref.Row < c.rows && ref.Col >= 0 && ref.Col < c.cols
}

func (c *Crossbar) check(ref BitRef) error {
	if !c.Contains(ref) {
		return fmt.Errorf("%w: cell %v in %dx%d array",
			ErrOutOfBounds, ref, c.rows, c.cols)
	}
	return nil
}

func (c *Crossbar) index(ref BitRef) int {
	return ref.Row*c.cols + ref.Col
}

// Write sets a cell to 0 or 1. Writes are initialization and are not
// metered.
func (c *Crossbar) Write(row, col int, bit uint8) error {
	ref := Ref(row, col)
	if bit > 1 {
		return fmt.Errorf("%w: %d at %v", ErrInvalidBitValue, bit, ref)
	}
	if err := c.check(ref); err != nil {
		return err
	}

	c.cells[c.index(ref)] = bit
	return nil
}

// Read returns the value of a cell. Reads are not metered.
func (c *Crossbar) Read(row, col int) (uint8, error) {
	return c.ReadRef(Ref(row, col))
}

// ReadRef returns the value of the cell addressed by ref.
func (c *Crossbar) ReadRef(ref BitRef) (uint8, error) {
	if err := c.check(ref); err != nil {
		return 0, err
	}
	return c.cells[c.index(ref)], nil
}

// NOT sets dst[col] = 1 - src[col] for every given column.
func (c *Crossbar) NOT(srcRow, dstRow int, cols []int) error {
	return c.rowOp(OpNOT, []int{srcRow}, dstRow, cols)
}

// NOR sets dst[col] = NOT(a[col] OR b[col]) for every given column.
func (c *Crossbar) NOR(rowA, rowB, dstRow int, cols []int) error {
	return c.rowOp(OpNOR, []int{rowA, rowB}, dstRow, cols)
}

// COPY sets dst[col] = src[col] for every given column.
func (c *Crossbar) COPY(srcRow, dstRow int, cols []int) error {
	return c.rowOp(OpCOPY, []int{srcRow}, dstRow, cols)
}

// NOTCell writes the complement of src into dst. The two cells may sit in
// different rows and columns.
func (c *Crossbar) NOTCell(src, dst BitRef) error {
	return c.Apply(Primitive{
		Op:   OpNOT,
		Srcs: []BitRef{src},
		Dsts: []BitRef{dst},
	})
}

// NORCell writes NOT(a OR b) into dst. The three cells may sit in different
// rows and columns.
func (c *Crossbar) NORCell(a, b, dst BitRef) error {
	return c.Apply(Primitive{
		Op:   OpNOR,
		Srcs: []BitRef{a, b},
		Dsts: []BitRef{dst},
	})
}

func (c *Crossbar) rowOp(op Op, srcRows []int, dstRow int, cols []int) error {
	p := Primitive{
		Op:   op,
		Srcs: make([]BitRef, 0, len(cols)*len(srcRows)),
		Dsts: make([]BitRef, 0, len(cols)),
	}

	for _, col := range cols {
		for _, row := range srcRows {
			p.Srcs = append(p.Srcs, Ref(row, col))
		}
		p.Dsts = append(p.Dsts, Ref(dstRow, col))
	}

	return c.Apply(p)
}

// Apply executes a primitive. All cells are validated before anything is
// written or metered, and every source is read before any destination is
// written.
func (c *Crossbar) Apply(p Primitive) error {
	if !p.Op.Valid() {
		return fmt.Errorf("%w: unknown op %d", ErrInvalidPrimitive, int(p.Op))
	}

	arity := p.Op.Arity()
	if len(p.Srcs) != arity*len(p.Dsts) {
		return fmt.Errorf("%w: %v with %d sources for %d destinations",
			ErrInvalidPrimitive, p.Op, len(p.Srcs), len(p.Dsts))
	}

	for _, ref := range p.Srcs {
		if err := c.check(ref); err != nil {
			return fmt.Errorf("%v source: %w", p.Op, err)
		}
	}
	for _, ref := range p.Dsts {
		if err := c.check(ref); err != nil {
			return fmt.Errorf("%v destination: %w", p.Op, err)
		}
	}

	out := make([]uint8, len(p.Dsts))
	in := make([]uint8, arity)
	for k := range p.Dsts {
		for i := 0; i < arity; i++ {
			in[i] = c.cells[c.index(p.Srcs[k*arity+i])]
		}
		out[k] = p.Op.eval(in)
	}
	for k, ref := range p.Dsts {
		c.cells[c.index(ref)] = out[k]
	}

	c.stats.record(p.Op, len(p.Dsts))

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosPrimitive,
			Item:   p,
		})
	}

	return nil
}

// Reset clears every cell and both counters. Hooks stay attached.
func (c *Crossbar) Reset() {
	for i := range c.cells {
		c.cells[i] = 0
	}
	c.stats.Reset()
}

// State returns a copy of the array, indexed [row][col].
func (c *Crossbar) State() [][]uint8 {
	state := make([][]uint8, c.rows)
	for r := range state {
		state[r] = make([]uint8, c.cols)
		copy(state[r], c.cells[r*c.cols:(r+1)*c.cols])
	}
	return state
}

// Latency returns the number of primitive calls issued since the last reset.
func (c *Crossbar) Latency() uint64 {
	return c.stats.Latency
}

// Energy returns the number of cells written by primitives since the last
// reset.
func (c *Crossbar) Energy() uint64 {
	return c.stats.Energy
}

// Stats returns a snapshot of all counters.
func (c *Crossbar) Stats() Stats {
	return c.stats
}
