package kali

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/kalisim/crossbar"
	"github.com/sarchlab/kalisim/partition"
)

// CompressPass replaces every consecutive triple of bits with the output of
// the sum-only compression cell. Up to two leftover bits are carried over
// unchanged, after the compressed ones.
func CompressPass(
	xb *crossbar.Crossbar,
	alloc *RowAllocator,
	bits []crossbar.BitRef,
) ([]crossbar.BitRef, error) {
	g := gates{xb: xb, alloc: alloc}
	k := len(bits)
	next := make([]crossbar.BitRef, 0, k/3+k%3)

	for t := 0; t+2 < k; t += 3 {
		s, err := g.sum3(bits[t], bits[t+1], bits[t+2])
		if err != nil {
			return nil, err
		}
		next = append(next, s)
	}

	return append(next, bits[k-k%3:]...), nil
}

// Reduce compresses each partition, lowest id first, until it holds at most
// two bits. Carries are not produced, so partitions stay independent.
func Reduce(xb *crossbar.Crossbar, alloc *RowAllocator, set partition.Set) (partition.Set, error) {
	out := make(partition.Set, len(set))

	for p, bits := range set {
		bits = append([]crossbar.BitRef{}, bits...)
		for len(bits) > 2 {
			var err error
			bits, err = CompressPass(xb, alloc, bits)
			if err != nil {
				return nil, errors.WithMessagef(err, "partition %d", p)
			}
		}
		out[p] = bits
	}

	return out, nil
}

// ReduceCarrySave runs Wallace rounds over all partitions until none holds
// more than two bits. In every round each triple of partition p goes through
// a full adder; the sum stays in p and the carry joins p+1 ahead of p+1's own
// bits. A carry out of the top partition is dropped: it is zero for any
// product of two N-bit operands.
func ReduceCarrySave(xb *crossbar.Crossbar, alloc *RowAllocator, set partition.Set) (partition.Set, error) {
	g := gates{xb: xb, alloc: alloc}
	cur := set.Clone()

	for cur.MaxHeight() > 2 {
		next := partition.NewSet(len(cur))

		for p, bits := range cur {
			k := len(bits)
			if k <= 2 {
				next[p] = append(next[p], bits...)
				continue
			}

			for t := 0; t+2 < k; t += 3 {
				s, c, err := g.fullAdder(bits[t], bits[t+1], bits[t+2])
				if err != nil {
					return nil, errors.WithMessagef(err, "partition %d", p)
				}
				next[p] = append(next[p], s)
				if p+1 < len(next) {
					next[p+1] = append(next[p+1], c)
				}
			}
			next[p] = append(next[p], bits[k-k%3:]...)
		}

		cur = next
	}

	return cur, nil
}
