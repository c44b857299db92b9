package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorYellow = lipgloss.Color("220")
	colorGray   = lipgloss.Color("245")
)

const ruleWidth = 80

// RenderText writes a console report: stock summary, one table row per bin
// and the requested/used totals. Colours are dropped when w is not a
// terminal.
func RenderText(w io.Writer, plan Plan) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true).Foreground(colorCyan)
	dim := r.NewStyle().Foreground(colorGray)
	warn := r.NewStyle().Foreground(colorYellow)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	numStyle := cellStyle.Align(lipgloss.Right)

	s := plan.Summary
	var b strings.Builder

	fmt.Fprintln(&b, strings.Repeat("-", ruleWidth))
	fmt.Fprintln(&b, title.Render("Cut plan"), dim.Render(s.ID))
	fmt.Fprintf(&b, "Stock length: %d  pieces: %d  total: %d\n", s.StockLength, s.StockCount, s.StockTotal)
	fmt.Fprintf(&b, "Cuts: %v\n", plan.Cuts)
	fmt.Fprintf(&b, "List with sum %d requires at least %d bins\n", s.TotalRequested, s.MinBins)
	fmt.Fprintf(&b, "Solution using %d bins:\n", s.BinsUsed)

	rows := make([][]string, 0, len(plan.Bins))
	for i, bin := range plan.Bins {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(bin.Used()),
			strconv.Itoa(bin.Remaining()),
			formatCuts(bin.Items()),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dim).
		Headers("#", "Used", "Remaining", "Cuts").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col < 3:
				return numStyle
			default:
				return cellStyle
			}
		})
	fmt.Fprintln(&b, t.String())

	fmt.Fprintf(&b, "total length requested: %d\n", s.TotalRequested)
	fmt.Fprintf(&b, "total length used: %d\n", s.TotalUsed)
	fmt.Fprintf(&b, "offcut: %d  utilization: %.1f%%\n", s.Offcut, s.Utilization)
	if s.Shortfall > 0 {
		fmt.Fprintln(&b, warn.Render(fmt.Sprintf("plan needs %d more stock pieces than the %d on hand", s.Shortfall, s.StockCount)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func formatCuts(cuts []int) string {
	parts := make([]string, len(cuts))
	for i, c := range cuts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ", ")
}
