package kali

import "github.com/pkg/errors"

// RowAllocator hands out scratch rows from the top of the array downward.
// Rows below floor hold inputs and partial products and are never returned.
type RowAllocator struct {
	top   int
	floor int
	next  int
}

// NewRowAllocator returns an allocator over rows [floor, top].
func NewRowAllocator(top, floor int) *RowAllocator {
	return &RowAllocator{top: top, floor: floor, next: top}
}

// Alloc returns the next free row.
func (a *RowAllocator) Alloc() (int, error) {
	if a.next < a.floor {
		return 0, errors.Wrapf(ErrScratchExhausted,
			"%d rows used between %d and %d", a.Used(), a.floor, a.top)
	}
	row := a.next
	a.next--
	return row, nil
}

// Used returns the number of rows handed out.
func (a *RowAllocator) Used() int {
	return a.top - a.next
}

// Remaining returns the number of rows still available.
func (a *RowAllocator) Remaining() int {
	return a.next - a.floor + 1
}

// Reset makes every row available again.
func (a *RowAllocator) Reset() {
	a.next = a.top
}
