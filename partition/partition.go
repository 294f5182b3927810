// Package partition groups crossbar bit references by binary significance.
//
// A Manager owns one ordered list of bit references per partition id. It
// never reads or writes the crossbar itself.
package partition

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/kalisim/crossbar"
)

// ErrOutOfRange is returned when a partition id is outside [0, NumPartitions).
var ErrOutOfRange = errors.New("partition id out of range")

// Set is a fixed-size, id-indexed collection of bit lists.
type Set [][]crossbar.BitRef

// NewSet returns a set of n empty partitions.
func NewSet(n int) Set {
	s := make(Set, n)
	for i := range s {
		s[i] = []crossbar.BitRef{}
	}
	return s
}

// Heights returns the number of bits held by every partition.
func (s Set) Heights() []int {
	h := make([]int, len(s))
	for i, bits := range s {
		h[i] = len(bits)
	}
	return h
}

// MaxHeight returns the size of the largest partition.
func (s Set) MaxHeight() int {
	highest := 0
	for _, bits := range s {
		if len(bits) > highest {
			highest = len(bits)
		}
	}
	return highest
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for i, bits := range s {
		c[i] = append([]crossbar.BitRef{}, bits...)
	}
	return c
}

// Manager assigns bit references to partitions.
type Manager struct {
	parts Set
}

// NewManager creates a manager with numPartitions empty partitions.
func NewManager(numPartitions int) (*Manager, error) {
	if numPartitions <= 0 {
		return nil, errors.Errorf("invalid partition count %d", numPartitions)
	}
	return &Manager{parts: NewSet(numPartitions)}, nil
}

// NumPartitions returns the fixed partition count.
func (m *Manager) NumPartitions() int {
	return len(m.parts)
}

func (m *Manager) check(id int) error {
	if id < 0 || id >= len(m.parts) {
		return errors.Wrapf(ErrOutOfRange, "id %d, have %d partitions", id, len(m.parts))
	}
	return nil
}

// Assign appends ref to partition id.
func (m *Manager) Assign(ref crossbar.BitRef, id int) error {
	if err := m.check(id); err != nil {
		return err
	}
	m.parts[id] = append(m.parts[id], ref)
	return nil
}

// Partition returns a copy of the (possibly empty) list held by partition id.
func (m *Manager) Partition(id int) ([]crossbar.BitRef, error) {
	if err := m.check(id); err != nil {
		return nil, err
	}
	return append([]crossbar.BitRef{}, m.parts[id]...), nil
}

// All returns a copy of every partition. Later stages derive new sets from
// it instead of mutating the manager in place.
func (m *Manager) All() Set {
	return m.parts.Clone()
}

// Replace swaps in a new set wholesale. The partition count cannot change.
func (m *Manager) Replace(s Set) error {
	if len(s) != len(m.parts) {
		return errors.Errorf("replacement has %d partitions, want %d",
			len(s), len(m.parts))
	}
	m.parts = s.Clone()
	return nil
}

// Reset empties every partition.
func (m *Manager) Reset() {
	m.parts = NewSet(len(m.parts))
}
