package kali

import (
	"github.com/sarchlab/kalisim/crossbar"
)

// Primitive counts of the NOR-built cells below. Each primitive writes one
// freshly allocated row.
const (
	sum3Gates      = 5
	halfAdderGates = 6
	fullAdderGates = 9
)

// gates composes crossbar primitives into logic cells. Every output lands in
// a new row from the allocator, in the column of its first input.
type gates struct {
	xb    *crossbar.Crossbar
	alloc *RowAllocator
}

func (g gates) nor(a, b crossbar.BitRef) (crossbar.BitRef, error) {
	row, err := g.alloc.Alloc()
	if err != nil {
		return crossbar.BitRef{}, err
	}

	dst := crossbar.Ref(row, a.Col)
	if a.Col == b.Col {
		err = g.xb.NOR(a.Row, b.Row, row, []int{a.Col})
	} else {
		err = g.xb.NORCell(a, b, dst)
	}

	return dst, err
}

func (g gates) not(a crossbar.BitRef) (crossbar.BitRef, error) {
	row, err := g.alloc.Alloc()
	if err != nil {
		return crossbar.BitRef{}, err
	}

	dst := crossbar.Ref(row, a.Col)
	return dst, g.xb.NOT(a.Row, row, []int{a.Col})
}

// zero returns a cell in col that holds 0. Writing it is not metered.
func (g gates) zero(col int) (crossbar.BitRef, error) {
	row, err := g.alloc.Alloc()
	if err != nil {
		return crossbar.BitRef{}, err
	}

	dst := crossbar.Ref(row, col)
	return dst, g.xb.Write(row, col, 0)
}

// norChain evaluates NOR gates in order. Each gate names its two inputs by
// index: indexes below len(in) select an input, larger ones select the
// output of an earlier gate.
func (g gates) norChain(in []crossbar.BitRef, gateInputs [][2]int) ([]crossbar.BitRef, error) {
	wires := append([]crossbar.BitRef{}, in...)
	for _, gi := range gateInputs {
		out, err := g.nor(wires[gi[0]], wires[gi[1]])
		if err != nil {
			return nil, err
		}
		wires = append(wires, out)
	}
	return wires[len(in):], nil
}

// sum3 is the compression cell of the sum-only scheme:
//
//	t1 = NOR(a, b), t2 = NOR(a, c), t3 = NOR(b, c)
//	t4 = NOR(t1, t2), s = NOR(t4, t3)
//
// It drops the carry, and s is not the parity of a, b, c for every input.
func (g gates) sum3(a, b, c crossbar.BitRef) (crossbar.BitRef, error) {
	out, err := g.norChain([]crossbar.BitRef{a, b, c}, [][2]int{
		{0, 1}, // t1
		{0, 2}, // t2
		{1, 2}, // t3
		{3, 4}, // t4 = NOR(t1, t2)
		{6, 5}, // s  = NOR(t4, t3)
	})
	if err != nil {
		return crossbar.BitRef{}, err
	}
	return out[4], nil
}

// fullAdder is the 9-NOR full adder:
//
//	n1 = NOR(a, b)    n2 = NOR(a, n1)   n3 = NOR(b, n1)
//	n4 = NOR(n2, n3)  n5 = NOR(n4, c)   n6 = NOR(n4, n5)
//	n7 = NOR(c, n5)   s  = NOR(n6, n7)  co = NOR(n5, n1)
func (g gates) fullAdder(a, b, c crossbar.BitRef) (sum, carry crossbar.BitRef, err error) {
	out, err := g.norChain([]crossbar.BitRef{a, b, c}, [][2]int{
		{0, 1}, // n1
		{0, 3}, // n2
		{1, 3}, // n3
		{4, 5}, // n4 = XNOR(a, b)
		{6, 2}, // n5
		{6, 7}, // n6
		{2, 7}, // n7
		{8, 9}, // s
		{7, 3}, // co
	})
	if err != nil {
		return crossbar.BitRef{}, crossbar.BitRef{}, err
	}
	return out[7], out[8], nil
}

// halfAdder builds s = a XOR b and c = a AND b from four NOR gates, one NOT
// and one more NOR.
func (g gates) halfAdder(a, b crossbar.BitRef) (sum, carry crossbar.BitRef, err error) {
	out, err := g.norChain([]crossbar.BitRef{a, b}, [][2]int{
		{0, 1}, // n1
		{0, 2}, // n2
		{1, 2}, // n3
		{3, 4}, // n4 = XNOR(a, b)
	})
	if err != nil {
		return crossbar.BitRef{}, crossbar.BitRef{}, err
	}

	sum, err = g.not(out[3])
	if err != nil {
		return crossbar.BitRef{}, crossbar.BitRef{}, err
	}

	carry, err = g.nor(out[0], sum)
	return sum, carry, err
}
