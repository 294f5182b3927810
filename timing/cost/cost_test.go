package cost_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/kalisim/crossbar"
	"github.com/sarchlab/kalisim/kali"
	"github.com/sarchlab/kalisim/timing/cost"
)

var _ = Describe("Model", func() {
	It("should map counters one to one with the default config", func() {
		m := cost.NewModel()
		e := m.Estimate(crossbar.Stats{
			Latency: 66, Energy: 66,
			NOTs: 32, NORs: 34,
			NOTCells: 32, NORCells: 34,
		})

		Expect(e.Primitives).To(Equal(uint64(66)))
		Expect(e.Cells).To(Equal(uint64(66)))
		Expect(e.Cycles).To(Equal(uint64(66)))
		Expect(float64(e.Time)).To(BeNumerically("~", 66e-9, 1e-15))
		Expect(e.EnergyPJ).To(BeNumerically("~", 66.0, 1e-9))
	})

	It("should weight energy per primitive", func() {
		config := cost.DefaultCostConfig()
		config.NOTEnergyPJ = 0.5
		config.NOREnergyPJ = 2
		config.COPYEnergyPJ = 0.25
		m := cost.NewModelWithConfig(config)

		e := m.Estimate(crossbar.Stats{NOTCells: 4, NORCells: 3, COPYCells: 8})
		Expect(e.EnergyPJ).To(BeNumerically("~", 2+6+2, 1e-9))
	})

	It("should scale cycles and time with the clock", func() {
		config := cost.DefaultCostConfig()
		config.CyclesPerPrimitive = 4
		config.FrequencyHz = 500 * sim.MHz
		m := cost.NewModelWithConfig(config)

		Expect(m.Config()).To(BeIdenticalTo(config))
		Expect(m.Cycles(10)).To(Equal(uint64(40)))
		Expect(float64(m.Time(40))).To(BeNumerically("~", 80e-9, 1e-15))
	})

	It("should estimate a multiplication and its stages", func() {
		r, err := kali.Multiply(5, 3, 4)
		Expect(err).NotTo(HaveOccurred())

		m := cost.NewModel()
		total := m.Estimate(r.Stats)
		Expect(total.Cycles).To(Equal(r.Latency()))

		var cycles uint64
		for _, sc := range r.Stages {
			cycles += m.Estimate(sc.Stats).Cycles
		}
		Expect(cycles).To(Equal(total.Cycles))
	})
})

var _ = Describe("CostConfig", func() {
	Describe("Default Config", func() {
		It("should create valid default config", func() {
			config := cost.DefaultCostConfig()
			Expect(config.Validate()).To(Succeed())
			Expect(config.FrequencyHz).To(Equal(1 * sim.GHz))
		})
	})

	Describe("Validation", func() {
		It("should reject a zero clock", func() {
			config := cost.DefaultCostConfig()
			config.FrequencyHz = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero cycles per primitive", func() {
			config := cost.DefaultCostConfig()
			config.CyclesPerPrimitive = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject negative energy", func() {
			config := cost.DefaultCostConfig()
			config.NOREnergyPJ = -1
			Expect(config.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := cost.DefaultCostConfig()
			clone := original.Clone()

			clone.CyclesPerPrimitive = 100

			Expect(original.CyclesPerPrimitive).To(Equal(uint64(1)))
			Expect(clone.CyclesPerPrimitive).To(Equal(uint64(100)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "cost-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := cost.DefaultCostConfig()
			original.CyclesPerPrimitive = 3
			original.NOREnergyPJ = 0.75

			path := filepath.Join(tempDir, "cost.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := cost.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(original))
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.json")
			Expect(os.WriteFile(path, []byte(`{"nor_energy_pj": 3}`), 0644)).To(Succeed())

			loaded, err := cost.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.NOREnergyPJ).To(Equal(3.0))
			Expect(loaded.CyclesPerPrimitive).To(Equal(uint64(1)))
		})

		It("should return error for non-existent file", func() {
			_, err := cost.LoadConfig("/nonexistent/path/cost.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = cost.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
