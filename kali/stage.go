package kali

// Stage is a state of the multiplication pipeline.
type Stage int

// Pipeline states, in order.
const (
	StageInit Stage = iota
	StagePartialProducts
	StagePartitioned
	StageReduced
	StageSummed
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "INIT"
	case StagePartialProducts:
		return "PARTIAL_PRODUCTS"
	case StagePartitioned:
		return "PARTITIONED"
	case StageReduced:
		return "REDUCED"
	case StageSummed:
		return "SUMMED"
	default:
		return "UNKNOWN"
	}
}
