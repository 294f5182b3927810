package crossbar

import "github.com/sarchlab/akita/v4/sim"

// HookPosPrimitive marks the point right after a primitive has been applied
// to the array and metered.
var HookPosPrimitive = &sim.HookPos{Name: "Crossbar Primitive"}

// Op identifies a crossbar primitive.
type Op int

// Supported primitives.
const (
	OpNOT Op = iota
	OpNOR
	OpCOPY
)

// Valid reports whether o is one of the defined primitives.
func (o Op) Valid() bool {
	return o >= OpNOT && o <= OpCOPY
}

// Arity returns the number of source cells feeding each destination cell.
func (o Op) Arity() int {
	if o == OpNOR {
		return 2
	}
	return 1
}

func (o Op) String() string {
	switch o {
	case OpNOT:
		return "NOT"
	case OpNOR:
		return "NOR"
	case OpCOPY:
		return "COPY"
	default:
		return "UNKNOWN"
	}
}

func (o Op) eval(in []uint8) uint8 {
	switch o {
	case OpNOT:
		return 1 - in[0]
	case OpNOR:
		if in[0] == 1 || in[1] == 1 {
			return 0
		}
		return 1
	default:
		return in[0]
	}
}

// Primitive describes one metered crossbar operation. Destination cell k is
// computed from Srcs[k*Arity() : (k+1)*Arity()].
//
// Primitives are delivered as the Item of a sim.HookCtx at HookPosPrimitive.
type Primitive struct {
	Op   Op
	Srcs []BitRef
	Dsts []BitRef
}

// Cells returns the number of cells the primitive writes.
func (p Primitive) Cells() int {
	return len(p.Dsts)
}
