package trace

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/kalisim/crossbar"
)

// Recorder is a sim.Hook that keeps every primitive it observes, in order.
type Recorder struct {
	prims []crossbar.Primitive
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Func implements sim.Hook.
func (r *Recorder) Func(ctx sim.HookCtx) {
	if ctx.Pos != crossbar.HookPosPrimitive {
		return
	}
	if p, ok := ctx.Item.(crossbar.Primitive); ok {
		r.prims = append(r.prims, p)
	}
}

// Primitives returns the recorded primitives.
func (r *Recorder) Primitives() []crossbar.Primitive {
	return append([]crossbar.Primitive{}, r.prims...)
}

// Len returns the number of recorded primitives.
func (r *Recorder) Len() int {
	return len(r.prims)
}

// Count returns how many recorded primitives used op.
func (r *Recorder) Count(op crossbar.Op) int {
	n := 0
	for _, p := range r.prims {
		if p.Op == op {
			n++
		}
	}
	return n
}

// Cells returns the total number of cells written by the recorded
// primitives.
func (r *Recorder) Cells() int {
	n := 0
	for _, p := range r.prims {
		n += p.Cells()
	}
	return n
}

// Reset drops all recorded primitives.
func (r *Recorder) Reset() {
	r.prims = nil
}
