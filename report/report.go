// Package report renders multiplication results as text tables.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/kalisim/kali"
	"github.com/sarchlab/kalisim/timing/cost"
)

// Summary renders the operands, the product and the total cost of a run.
func Summary(r *kali.Result, m *cost.Model) string {
	est := m.Estimate(r.Stats)

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("KALI %d-bit multiply (%v)", r.Width, r.Scheme))
	t.AppendRows([]table.Row{
		{"A", fmt.Sprintf("%d (%s)", r.A, bitString(r.ABits))},
		{"B", fmt.Sprintf("%d (%s)", r.B, bitString(r.BBits))},
		{"Result bits", r.BitString()},
		{"Product", r.Product},
		{"Expected", r.Expected()},
		{"Exact", r.Exact()},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Crossbar", fmt.Sprintf("%dx%d", r.Crossbar.Rows(), r.Crossbar.Cols())},
		{"Scratch rows", r.ScratchRows},
		{"Latency (primitives)", r.Latency()},
		{"Energy (cells)", r.Energy()},
		{"Cycles", est.Cycles},
		{"Time (ns)", fmt.Sprintf("%.3f", float64(est.Time)*1e9)},
		{"Energy (pJ)", fmt.Sprintf("%.3f", est.EnergyPJ)},
	})

	return t.Render()
}

// Stages renders the cost of every completed stage.
func Stages(stages []kali.StageCost, m *cost.Model) string {
	t := table.NewWriter()
	t.SetTitle("Stage costs")
	t.AppendHeader(table.Row{"Stage", "Latency", "Energy", "NOT", "NOR", "COPY", "Cycles", "Energy (pJ)"})

	var total kali.StageCost
	for _, sc := range stages {
		est := m.Estimate(sc.Stats)
		t.AppendRow(table.Row{
			sc.Stage, sc.Stats.Latency, sc.Stats.Energy,
			sc.Stats.NOTs, sc.Stats.NORs, sc.Stats.COPYs,
			est.Cycles, fmt.Sprintf("%.3f", est.EnergyPJ),
		})

		total.Stats.Latency += sc.Stats.Latency
		total.Stats.Energy += sc.Stats.Energy
		total.Stats.NOTCells += sc.Stats.NOTCells
		total.Stats.NORCells += sc.Stats.NORCells
		total.Stats.COPYCells += sc.Stats.COPYCells
	}

	est := m.Estimate(total.Stats)
	t.AppendFooter(table.Row{
		"Total", total.Stats.Latency, total.Stats.Energy, "", "", "",
		est.Cycles, fmt.Sprintf("%.3f", est.EnergyPJ),
	})

	return t.Render()
}

// State renders the crossbar array one row per line. With skipZero, rows
// holding only zeros are left out.
func State(h kali.Handle, skipZero bool) string {
	state := h.State()

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Crossbar %dx%d", h.Rows(), h.Cols()))

	header := table.Row{"Row"}
	for c := 0; c < h.Cols(); c++ {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for r, cells := range state {
		if skipZero && allZero(cells) {
			continue
		}
		row := table.Row{r}
		for _, v := range cells {
			row = append(row, v)
		}
		t.AppendRow(row)
	}

	return t.Render()
}

func allZero(cells []uint8) bool {
	for _, v := range cells {
		if v != 0 {
			return false
		}
	}
	return true
}

func bitString(bits []uint8) string {
	var b strings.Builder
	for _, v := range bits {
		b.WriteByte('0' + v)
	}
	return b.String()
}
