package cost

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
)

// CostConfig holds the physical parameters used to turn primitive counts
// into time and energy.
type CostConfig struct {
	// FrequencyHz is the crossbar clock. Default: 1 GHz.
	FrequencyHz sim.Freq `json:"frequency_hz"`

	// CyclesPerPrimitive is the number of clock cycles one NOT, NOR or COPY
	// call occupies, regardless of how many columns it touches. Default: 1.
	CyclesPerPrimitive uint64 `json:"cycles_per_primitive"`

	// NOTEnergyPJ is the energy of writing one cell with NOT, in picojoules.
	NOTEnergyPJ float64 `json:"not_energy_pj"`

	// NOREnergyPJ is the energy of writing one cell with NOR, in picojoules.
	NOREnergyPJ float64 `json:"nor_energy_pj"`

	// COPYEnergyPJ is the energy of writing one cell with COPY, in picojoules.
	COPYEnergyPJ float64 `json:"copy_energy_pj"`
}

// DefaultCostConfig returns a CostConfig with unit costs at 1 GHz.
func DefaultCostConfig() *CostConfig {
	return &CostConfig{
		FrequencyHz:        1 * sim.GHz,
		CyclesPerPrimitive: 1,
		NOTEnergyPJ:        1,
		NOREnergyPJ:        1,
		COPYEnergyPJ:       1,
	}
}

// LoadConfig loads a CostConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*CostConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cost config file: %w", err)
	}

	config := DefaultCostConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse cost config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a CostConfig to a JSON file.
func (c *CostConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cost config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cost config file: %w", err)
	}

	return nil
}

// Validate checks that the clock and cycle count are positive and that no
// energy is negative.
func (c *CostConfig) Validate() error {
	if c.FrequencyHz <= 0 {
		return fmt.Errorf("frequency_hz must be > 0")
	}
	if c.CyclesPerPrimitive == 0 {
		return fmt.Errorf("cycles_per_primitive must be > 0")
	}
	if c.NOTEnergyPJ < 0 || c.NOREnergyPJ < 0 || c.COPYEnergyPJ < 0 {
		return fmt.Errorf("per-cell energies must be >= 0")
	}
	return nil
}

// Clone returns a copy of the CostConfig.
func (c *CostConfig) Clone() *CostConfig {
	clone := *c
	return &clone
}
