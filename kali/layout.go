package kali

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/kalisim/crossbar"
)

// Layout fixes where each stage places its cells for an N-bit multiply.
//
//	row 0, cols [2, 2+N)       operand A, most significant bit first
//	col 0, rows [1, 1+N)       operand B, most significant bit first
//	rows N+1, N+2              partial-product scratch
//	rows [N+3, N+3+N²), col 0  partial products, aᵢ·bⱼ at N+3+i·N+j
//	rows above the block       reduction and final-stage scratch
//
// Bit i of an operand is the bit of weight 2^i.
type Layout struct {
	Width int

	ARow      int
	AColStart int
	BCol      int
	BRowStart int

	Scratch [2]int

	ProductStart int
	ProductCol   int
}

// NewLayout returns the layout for width-bit operands.
func NewLayout(width int) (Layout, error) {
	if width < 1 || width > MaxWidth {
		return Layout{}, errors.Wrapf(ErrInvalidWidth, "width %d", width)
	}

	return Layout{
		Width:        width,
		ARow:         0,
		AColStart:    2,
		BCol:         0,
		BRowStart:    1,
		Scratch:      [2]int{width + 1, width + 2},
		ProductStart: width + 3,
		ProductCol:   0,
	}, nil
}

// NumPartitions returns the number of product weights, 2N.
func (l Layout) NumPartitions() int {
	return 2 * l.Width
}

// ACell returns the cell holding bit i of operand A.
func (l Layout) ACell(i int) crossbar.BitRef {
	return crossbar.Ref(l.ARow, l.AColStart+l.Width-1-i)
}

// BCell returns the cell holding bit j of operand B.
func (l Layout) BCell(j int) crossbar.BitRef {
	return crossbar.Ref(l.BRowStart+l.Width-1-j, l.BCol)
}

// ProductCell returns the cell holding aᵢ·bⱼ for a block starting at start.
func (l Layout) ProductCell(start, i, j int) crossbar.BitRef {
	return crossbar.Ref(start+i*l.Width+j, l.ProductCol)
}

// ProductEnd returns the first row above the partial-product block.
func (l Layout) ProductEnd() int {
	return l.ProductStart + l.Width*l.Width
}

// RequiredCols returns the number of columns a width-bit multiply needs.
func RequiredCols(width int) int {
	return width + 2
}

// RequiredRows returns the exact number of rows a width-bit multiply needs
// under the given scheme.
func RequiredRows(width int, scheme Scheme) (int, error) {
	l, err := NewLayout(width)
	if err != nil {
		return 0, err
	}
	return l.ProductEnd() + ScratchRows(width, scheme), nil
}

// ScratchRows returns the number of rows the reduction and final stages
// allocate. Allocation depends only on partition heights, never on bit
// values, so replaying the heights gives the exact count.
func ScratchRows(width int, scheme Scheme) int {
	heights := initialHeights(width)
	if scheme == SchemeCarrySave {
		return carrySaveRows(heights)
	}
	return sumOnlyRows(heights)
}

func initialHeights(width int) []int {
	h := make([]int, 2*width)
	for i := 0; i < width; i++ {
		for j := 0; j < width; j++ {
			h[i+j]++
		}
	}
	return h
}

func sumOnlyRows(heights []int) int {
	rows := 0
	for _, k := range heights {
		for k > 2 {
			groups := k / 3
			rows += sum3Gates * groups
			k = groups + k%3
		}
		if k != 1 {
			rows++
		}
	}
	return rows
}

func carrySaveRows(heights []int) int {
	rows := 0
	h := append([]int{}, heights...)

	for maxOf(h) > 2 {
		next := make([]int, len(h))
		for p, k := range h {
			if k <= 2 {
				next[p] += k
				continue
			}
			groups := k / 3
			rows += fullAdderGates * groups
			next[p] += groups + k%3
			if p+1 < len(h) {
				next[p+1] += groups
			}
		}
		h = next
	}

	carry := 0
	for _, k := range h {
		switch k + carry {
		case 0:
			rows++
			carry = 0
		case 1:
			carry = 0
		case 2:
			rows += halfAdderGates
			carry = 1
		default:
			rows += fullAdderGates
			carry = 1
		}
	}

	return rows
}

func maxOf(h []int) int {
	highest := 0
	for _, k := range h {
		if k > highest {
			highest = k
		}
	}
	return highest
}
