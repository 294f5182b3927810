// Package cost converts the abstract latency and energy counters of a
// crossbar into cycles, simulated time and picojoules.
//
// The parameters are configurable via CostConfig.
package cost

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/kalisim/crossbar"
)

// Estimate is the physical cost of a run.
type Estimate struct {
	Primitives uint64
	Cells      uint64

	Cycles   uint64
	Time     sim.VTimeInSec
	EnergyPJ float64
}

// Model applies a CostConfig to crossbar statistics.
type Model struct {
	config *CostConfig
}

// NewModel creates a model with the default configuration.
func NewModel() *Model {
	return &Model{
		config: DefaultCostConfig(),
	}
}

// NewModelWithConfig creates a model with a custom configuration.
func NewModelWithConfig(config *CostConfig) *Model {
	return &Model{
		config: config,
	}
}

// Config returns the configuration in use.
func (m *Model) Config() *CostConfig {
	return m.config
}

// Cycles returns the clock cycles taken by the given number of primitive
// calls.
func (m *Model) Cycles(primitives uint64) uint64 {
	return primitives * m.config.CyclesPerPrimitive
}

// Time returns the simulated time of the given number of cycles.
func (m *Model) Time(cycles uint64) sim.VTimeInSec {
	return m.config.FrequencyHz.Period() * sim.VTimeInSec(cycles)
}

// EnergyPJ returns the energy of the cells written, weighted per primitive.
func (m *Model) EnergyPJ(s crossbar.Stats) float64 {
	return float64(s.NOTCells)*m.config.NOTEnergyPJ +
		float64(s.NORCells)*m.config.NOREnergyPJ +
		float64(s.COPYCells)*m.config.COPYEnergyPJ
}

// Estimate converts a statistics snapshot, or a delta between two, into
// physical cost.
func (m *Model) Estimate(s crossbar.Stats) Estimate {
	cycles := m.Cycles(s.Latency)

	return Estimate{
		Primitives: s.Latency,
		Cells:      s.Energy,
		Cycles:     cycles,
		Time:       m.Time(cycles),
		EnergyPJ:   m.EnergyPJ(s),
	}
}
