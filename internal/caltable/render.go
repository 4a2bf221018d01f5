package caltable

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// fluxDigits is the printed precision for flux and distance columns.
const fluxDigits = 4

// Render writes the calibration table to w for terminal display.
func (t *Table) Render(w io.Writer) {
	fmt.Fprintf(w, "Magnet: %.4g x %.4g x %.4g mm, Br %.4g mT\n",
		t.Magnet.Length, t.Magnet.Width, t.Magnet.Thickness, t.Magnet.Remanence)
	fmt.Fprintf(w, "Partition: %s segments over [%.4g, %.4g) mm\n\n",
		humanize.Comma(int64(t.Segments)), t.From, t.To)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	tbl.AppendHeader(table.Row{"Segment", "Distance [mm]", "Flux [mT]", "Slope", "Intercept", "Invertible"})

	for _, row := range t.Rows {
		tbl.AppendRow(table.Row{
			row.Segment,
			formatSpan(row.DistanceLo, row.DistanceHi),
			formatSpan(row.FluxLo, row.FluxHi),
			formatFloat(row.Slope),
			formatFloat(row.Intercept),
			row.Invertible,
		})
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("Total: %s", humanize.Comma(int64(len(t.Rows)))),
		"", "", "", "",
		fmt.Sprintf("max err %s mT", formatFloat(t.MaxAbsError)),
	})

	tbl.Render()
}

// formatSpan renders a half-open numeric range.
func formatSpan(lo, hi float64) string {
	return fmt.Sprintf("[%s, %s)", formatFloat(lo), formatFloat(hi))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', fluxDigits, 64)
}
