package kali

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/kalisim/crossbar"
	"github.com/sarchlab/kalisim/partition"
)

// FinalSum leaves one bit per partition: a single bit is kept, two bits are
// combined by one NOR and an empty partition resolves to a zeroed cell. No
// carry moves between partitions.
func FinalSum(xb *crossbar.Crossbar, alloc *RowAllocator, set partition.Set) ([]crossbar.BitRef, error) {
	g := gates{xb: xb, alloc: alloc}
	col := productColumn(set)
	out := make([]crossbar.BitRef, len(set))

	for p, bits := range set {
		var err error
		switch len(bits) {
		case 0:
			out[p], err = g.zero(col)
		case 1:
			out[p] = bits[0]
		case 2:
			out[p], err = g.nor(bits[0], bits[1])
		default:
			err = errors.Errorf("%d bits left, want at most 2", len(bits))
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "partition %d", p)
		}
	}

	return out, nil
}

// FinalSumRipple adds the remaining bits of each partition together with the
// carry of the partition below it, lowest id first. The carry out of the top
// partition is dropped.
func FinalSumRipple(xb *crossbar.Crossbar, alloc *RowAllocator, set partition.Set) ([]crossbar.BitRef, error) {
	g := gates{xb: xb, alloc: alloc}
	col := productColumn(set)
	out := make([]crossbar.BitRef, len(set))

	var carry []crossbar.BitRef
	for p, bits := range set {
		in := append(append([]crossbar.BitRef{}, bits...), carry...)
		carry = nil

		var err error
		switch len(in) {
		case 0:
			out[p], err = g.zero(col)
		case 1:
			out[p] = in[0]
		case 2:
			var c crossbar.BitRef
			out[p], c, err = g.halfAdder(in[0], in[1])
			carry = []crossbar.BitRef{c}
		case 3:
			var c crossbar.BitRef
			out[p], c, err = g.fullAdder(in[0], in[1], in[2])
			carry = []crossbar.BitRef{c}
		default:
			err = errors.Errorf("%d bits left with carry, want at most 3", len(in))
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "partition %d", p)
		}
	}

	return out, nil
}

func productColumn(set partition.Set) int {
	for _, bits := range set {
		if len(bits) > 0 {
			return bits[0].Col
		}
	}
	return 0
}
