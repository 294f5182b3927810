package kali

import (
	"github.com/sarchlab/kalisim/crossbar"
)

// GeneratePartialProducts computes aᵢ AND bⱼ for every pair as
// NOR(NOT aᵢ, NOT bⱼ): two NOTs into the scratch rows and one NOR into the
// destination row. It returns the first row of the N² product block.
//
// The scratch rows are reused by every pair; each triple consumes them
// before the next begins.
func GeneratePartialProducts(xb *crossbar.Crossbar, l Layout) (int, error) {
	notA := crossbar.Ref(l.Scratch[0], l.ProductCol)
	notB := crossbar.Ref(l.Scratch[1], l.ProductCol)

	for i := 0; i < l.Width; i++ {
		for j := 0; j < l.Width; j++ {
			dst := l.ProductCell(l.ProductStart, i, j)

			if err := xb.NOTCell(l.ACell(i), notA); err != nil {
				return 0, err
			}
			if err := xb.NOTCell(l.BCell(j), notB); err != nil {
				return 0, err
			}
			if err := xb.NOR(notA.Row, notB.Row, dst.Row, []int{dst.Col}); err != nil {
				return 0, err
			}
		}
	}

	return l.ProductStart, nil
}
