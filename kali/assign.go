package kali

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/kalisim/partition"
)

// AssignPartitions registers aᵢ·bⱼ under partition i+j, i major and j minor.
func AssignPartitions(pm *partition.Manager, l Layout, start int) (partition.Set, error) {
	for i := 0; i < l.Width; i++ {
		for j := 0; j < l.Width; j++ {
			if err := pm.Assign(l.ProductCell(start, i, j), i+j); err != nil {
				return nil, errors.WithMessagef(err, "a%d·b%d", i, j)
			}
		}
	}
	return pm.All(), nil
}
