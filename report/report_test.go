package report_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/kalisim/kali"
	"github.com/sarchlab/kalisim/report"
	"github.com/sarchlab/kalisim/timing/cost"
)

var _ = Describe("Report", func() {
	var (
		r *kali.Result
		m *cost.Model
	)

	BeforeEach(func() {
		var err error
		r, err = kali.Multiply(5, 3, 4)
		Expect(err).NotTo(HaveOccurred())
		m = cost.NewModel()
	})

	It("should summarize operands, product and cost", func() {
		out := report.Summary(r, m)

		Expect(strings.ToUpper(out)).To(ContainSubstring("KALI 4-BIT MULTIPLY (SUM-ONLY)"))
		Expect(out).To(ContainSubstring("5 (0101)"))
		Expect(out).To(ContainSubstring("3 (0011)"))
		Expect(out).To(ContainSubstring("00100101"))
		Expect(out).To(ContainSubstring("37"))
		Expect(out).To(ContainSubstring("42x6"))
		Expect(out).To(ContainSubstring("66.000"))
	})

	It("should list every stage with a total", func() {
		out := report.Stages(r.Stages, m)

		for _, name := range []string{"PARTIAL_PRODUCTS", "PARTITIONED", "REDUCED", "SUMMED"} {
			Expect(out).To(ContainSubstring(name))
		}
		Expect(strings.ToUpper(out)).To(ContainSubstring("TOTAL"))
	})

	It("should render the crossbar array", func() {
		full := report.State(r.Crossbar, false)
		sparse := report.State(r.Crossbar, true)

		Expect(strings.ToUpper(full)).To(ContainSubstring("CROSSBAR 42X6"))
		Expect(strings.Count(full, "\n")).To(BeNumerically(">", strings.Count(sparse, "\n")))
	})
})
