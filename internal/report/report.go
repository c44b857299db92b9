// Package report turns a packing result into the totals a fabricator needs
// and renders them as a console table, a JSON document or a printable PDF
// cut sheet.
package report

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/eugenenazirov/stock-cutter/internal/packer"
	"github.com/eugenenazirov/stock-cutter/internal/stock"
)

// ErrUnknownFormat is returned for an output format other than text or json.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how a Plan is written to a stream.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Summary aggregates the totals printed under a cut plan.
type Summary struct {
	ID             string  `json:"id"`
	StockLength    int     `json:"stockLength"`
	StockCount     int     `json:"stockCount"`
	StockTotal     int     `json:"stockTotal"`
	CutCount       int     `json:"cutCount"`
	TotalRequested int     `json:"totalRequested"`
	TotalUsed      int     `json:"totalUsed"`
	MinBins        int     `json:"minBins"`
	BinsUsed       int     `json:"binsUsed"`
	Offcut         int     `json:"offcut"`
	Utilization    float64 `json:"utilization"`
	Shortfall      int     `json:"shortfall"`
}

// Plan is a packing result together with its summary. Cuts is the full
// cut list in ascending order.
type Plan struct {
	Summary Summary       `json:"summary"`
	Cuts    []int         `json:"cuts"`
	Bins    []*packer.Bin `json:"bins"`
}

// Build computes the summary for bins packed from cuts out of s.
func Build(s stock.Stock, cuts []int, bins []*packer.Bin) Plan {
	requested := stock.Sum(cuts)
	sorted := slices.Clone(cuts)
	slices.Sort(sorted)

	used := 0
	for _, b := range bins {
		used += b.Used()
	}

	opened := len(bins) * s.Length()
	var utilization float64
	if opened > 0 {
		utilization = float64(used) / float64(opened) * 100
	}

	shortfall := len(bins) - s.Count()
	if shortfall < 0 {
		shortfall = 0
	}

	return Plan{
		Summary: Summary{
			ID:             uuid.NewString(),
			StockLength:    s.Length(),
			StockCount:     s.Count(),
			StockTotal:     s.Total(),
			CutCount:       len(cuts),
			TotalRequested: requested,
			TotalUsed:      used,
			MinBins:        s.MinBins(requested),
			BinsUsed:       len(bins),
			Offcut:         opened - used,
			Utilization:    utilization,
			Shortfall:      shortfall,
		},
		Cuts: sorted,
		Bins: bins,
	}
}

// Render writes plan to w in the given format.
func Render(w io.Writer, plan Plan, format Format) error {
	switch format {
	case FormatText:
		return RenderText(w, plan)
	case FormatJSON:
		return RenderJSON(w, plan)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
