package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorDim   = lipgloss.Color("240")
	colorGray  = lipgloss.Color("245")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")

	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(colorGreen)
	badStyle    = lipgloss.NewStyle().Foreground(colorRed)
	keyStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(22)
)

// Render formats one table with rounded borders for the terminal.
func Render(t Table) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})

	return titleStyle.Render(t.Title) + "\n" + tbl.Render() + "\n"
}

// RenderSummary formats the summary as a key-value block.
func RenderSummary(s Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Case %s", s.Case)) + "\n")

	status := okStyle.Render("converged")
	if !s.Converged {
		status = badStyle.Render("NOT converged")
	}
	line := func(key, value string) {
		b.WriteString(keyStyle.Render(key) + " " + value + "\n")
	}

	line("Status", status)
	line("Elements", fmt.Sprintf("%d buses, %d lines, %d trafos, %d gens, %d loads, %d ext grids",
		s.BusCount, s.LineCount, s.TrafoCount, s.GenCount, s.LoadCount, s.ExtGridCount))
	line("Total load", fmt.Sprintf("%.3f MW / %.3f MVar", s.TotalLoadMW, s.TotalLoadMVar))
	line("Ext grid injection", fmt.Sprintf("%.3f MW", s.ExtGridMW))
	line("Generator output", fmt.Sprintf("%.3f MW", s.GenMW))
	line("Line losses", fmt.Sprintf("%.3f MW", s.LineLossMW))
	line("Trafo losses", fmt.Sprintf("%.3f MW", s.TrafoLossMW))
	line("Total losses", fmt.Sprintf("%.3f MW / %.3f MVar", s.TotalLossMW, s.TotalLossMVar))

	balance := fmt.Sprintf("%.4f MW", s.BalanceMW)
	if s.BalanceMW > -0.01 && s.BalanceMW < 0.01 {
		balance = okStyle.Render(balance)
	} else {
		balance = badStyle.Render(balance)
	}
	line("Power balance", balance)

	voltages := fmt.Sprintf("min %.3f (bus %d), max %.3f (bus %d), mean %.3f",
		s.MinVMPU, s.MinVMBus, s.MaxVMPU, s.MaxVMBus, s.MeanVMPU)
	if s.VoltageBand() {
		voltages += " " + okStyle.Render("[normal]")
	} else {
		voltages += " " + badStyle.Render("[out of band]")
	}
	line("Voltages (pu)", voltages)

	return b.String()
}
