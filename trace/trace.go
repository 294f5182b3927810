// Package trace observes crossbar primitives through akita hooks.
//
// Tracer writes one structured log record per primitive at LevelTrace.
// Recorder keeps the primitives in memory for inspection after a run.
package trace

import (
	"context"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/kalisim/crossbar"
)

// LevelTrace sits between Info and Warn so that primitive traces can be
// enabled without debug output.
const LevelTrace slog.Level = slog.LevelInfo + 1

// Trace logs msg at LevelTrace on the default logger.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// Tracer is a sim.Hook that logs every primitive applied to a crossbar.
type Tracer struct {
	logger *slog.Logger
}

// NewTracer creates a tracer writing to logger. A nil logger selects the
// default logger at the time of each record.
func NewTracer(logger *slog.Logger) *Tracer {
	return &Tracer{logger: logger}
}

// Func implements sim.Hook.
func (t *Tracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != crossbar.HookPosPrimitive {
		return
	}

	p, ok := ctx.Item.(crossbar.Primitive)
	if !ok {
		return
	}

	logger := t.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{
		"Op", p.Op.String(),
		"Dst", dstString(p.Dsts),
		"Cells", p.Cells(),
	}
	if xb, ok := ctx.Domain.(*crossbar.Crossbar); ok {
		attrs = append(attrs,
			"Crossbar", xb.Name(),
			slog.Uint64("Latency", xb.Latency()),
			slog.Uint64("Energy", xb.Energy()),
		)
	}

	logger.Log(context.Background(), LevelTrace, "Primitive", attrs...)
}

func dstString(dsts []crossbar.BitRef) string {
	switch len(dsts) {
	case 0:
		return ""
	case 1:
		return dsts[0].String()
	default:
		return dsts[0].String() + ".." + dsts[len(dsts)-1].String()
	}
}
