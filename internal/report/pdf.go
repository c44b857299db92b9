package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

type rgb struct {
	R, G, B int
}

var cutColors = []rgb{
	{R: 76, G: 175, B: 80},
	{R: 33, G: 150, B: 243},
	{R: 255, G: 152, B: 0},
	{R: 156, G: 39, B: 176},
	{R: 0, G: 188, B: 212},
	{R: 244, G: 67, B: 54},
}

// A4 portrait in mm.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	labelWidth   = 18.0
	barHeight    = 8.0
	rowGap       = 6.0
)

// WritePDF writes the plan as a cut sheet to path.
func WritePDF(path string, plan Plan) error {
	pdf, err := buildPDF(plan)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// EncodePDF writes the plan as a cut sheet to w.
func EncodePDF(w io.Writer, plan Plan) error {
	pdf, err := buildPDF(plan)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(plan Plan) (*fpdf.Fpdf, error) {
	if len(plan.Bins) == 0 {
		return nil, fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("Cut plan "+plan.Summary.ID, true)
	pdf.AddPage()

	y := renderHeader(pdf, plan.Summary)

	barWidth := pageWidth - marginLeft - marginRight - labelWidth
	scale := barWidth / float64(plan.Summary.StockLength)

	for i, bin := range plan.Bins {
		if y+barHeight+rowGap > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(labelWidth, barHeight, fmt.Sprintf("#%d", i+1), "", 0, "L", false, 0, "")

		x := marginLeft + labelWidth
		pdf.SetFillColor(235, 235, 235)
		pdf.SetDrawColor(100, 100, 100)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, float64(bin.Capacity())*scale, barHeight, "FD")

		pdf.SetFont("Helvetica", "", 7)
		for j, cut := range bin.Items() {
			w := float64(cut) * scale
			col := cutColors[j%len(cutColors)]
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.Rect(x, y, w, barHeight, "FD")

			label := fmt.Sprintf("%d", cut)
			if pdf.GetStringWidth(label) < w-1 {
				pdf.SetXY(x, y)
				pdf.CellFormat(w, barHeight, label, "", 0, "C", false, 0, "")
			}
			x += w
		}

		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(90, 90, 90)
		pdf.SetXY(marginLeft+labelWidth, y+barHeight)
		pdf.CellFormat(barWidth, 4, fmt.Sprintf("used %d / %d, offcut %d", bin.Used(), bin.Capacity(), bin.Remaining()), "", 0, "L", false, 0, "")

		y += barHeight + rowGap
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}
	return pdf, nil
}

func renderHeader(pdf *fpdf.Fpdf, s Summary) float64 {
	contentWidth := pageWidth - marginLeft - marginRight

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 8, "Cut plan", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, marginTop+8)
	pdf.CellFormat(contentWidth, 4, s.ID, "", 0, "L", false, 0, "")

	lines := []string{
		fmt.Sprintf("Stock: %d x %d (total %d)", s.StockCount, s.StockLength, s.StockTotal),
		fmt.Sprintf("Cuts: %d, total length requested: %d", s.CutCount, s.TotalRequested),
		fmt.Sprintf("Bins used: %d (at least %d required), total length used: %d", s.BinsUsed, s.MinBins, s.TotalUsed),
		fmt.Sprintf("Offcut: %d, utilization: %.1f%%", s.Offcut, s.Utilization),
	}
	if s.Shortfall > 0 {
		lines = append(lines, fmt.Sprintf("Short by %d stock pieces", s.Shortfall))
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	y := marginTop + 14
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(contentWidth, 5, line, "", 0, "L", false, 0, "")
		y += 5
	}

	return y + rowGap
}
