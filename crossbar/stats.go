package crossbar

// Stats holds the cost counters of a Crossbar.
type Stats struct {
	// Latency is the number of primitive calls issued.
	Latency uint64
	// Energy is the number of cells written by primitive calls.
	Energy uint64

	// Per-primitive call counts.
	NOTs  uint64
	NORs  uint64
	COPYs uint64

	// Per-primitive cell counts. They add up to Energy.
	NOTCells  uint64
	NORCells  uint64
	COPYCells uint64
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	*s = Stats{}
}

// Sub returns the counters accumulated since an earlier snapshot.
func (s Stats) Sub(earlier Stats) Stats {
	return Stats{
		Latency:   s.Latency - earlier.Latency,
		Energy:    s.Energy - earlier.Energy,
		NOTs:      s.NOTs - earlier.NOTs,
		NORs:      s.NORs - earlier.NORs,
		COPYs:     s.COPYs - earlier.COPYs,
		NOTCells:  s.NOTCells - earlier.NOTCells,
		NORCells:  s.NORCells - earlier.NORCells,
		COPYCells: s.COPYCells - earlier.COPYCells,
	}
}

func (s *Stats) record(op Op, cells int) {
	n := uint64(cells)
	s.Latency++
	s.Energy += n

	switch op {
	case OpNOT:
		s.NOTs++
		s.NOTCells += n
	case OpNOR:
		s.NORs++
		s.NORCells += n
	case OpCOPY:
		s.COPYs++
		s.COPYCells += n
	}
}
