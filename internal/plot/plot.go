// Package plot renders the calibration curve and its approximation
// error as a standalone HTML page using go-echarts.
package plot

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/fluxcal/pkg/fluxmodel"
	"github.com/Sumatoshi-tech/fluxcal/pkg/piecewise"
)

const (
	// curveProbes is the sampling density for the plotted curves.
	curveProbes = 512

	chartWidth  = "1100px"
	chartHeight = "500px"

	lineWidth     = 2
	lineWidthThin = 1
	knotSymbol    = 6

	labelDigits = 3
)

// WritePage renders the flux curve chart and the approximation error
// chart for the given inverter as one HTML page.
func WritePage(w io.Writer, inv *piecewise.Inverter, magnet fluxmodel.Magnet, theme Theme) error {
	palette := Palette(theme)

	page := components.NewPage()
	page.SetLayout(components.PageCenterLayout)
	page.PageTitle = "fluxcal calibration"

	page.AddCharts(
		buildCurveChart(inv, magnet, palette),
		buildErrorChart(inv, palette),
	)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot page: %w", err)
	}

	return nil
}

// buildCurveChart plots the true flux equation against the chord
// approximation, with the sampled knots marked.
func buildCurveChart(inv *piecewise.Inverter, magnet fluxmodel.Magnet, palette ChartPalette) components.Charter {
	labels, xs := probeGrid(inv)

	trueData := make([]opts.LineData, len(xs))
	approxData := make([]opts.LineData, len(xs))

	fn := inv.Source()

	for i, x := range xs {
		trueData[i] = opts.LineData{Value: fn(x)}

		approx, err := inv.Forward(x)
		if err != nil {
			approx = math.NaN()
		}

		approxData[i] = opts.LineData{Value: approx}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: palette.Background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Flux density vs distance",
			Subtitle: fmt.Sprintf("%.4g x %.4g x %.4g mm block, Br %.4g mT, %d segments",
				magnet.Length, magnet.Width, magnet.Thickness, magnet.Remanence, inv.SegmentCount()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance [mm]"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Flux [mT]"}),
	)
	line.SetXAxis(labels)

	line.AddSeries("B(d)", trueData,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.Primary[0]}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)
	line.AddSeries("Chord approximation", approxData,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.Semantic.Warning}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidthThin, Type: "dashed"}),
	)

	line.Overlap(buildKnotScatter(inv, palette))

	return line
}

// buildKnotScatter marks the sampled knots of the partition.
func buildKnotScatter(inv *piecewise.Inverter, palette ChartPalette) *charts.Scatter {
	segments := inv.Segments()

	labels := make([]string, 0, len(segments)+1)
	data := make([]opts.ScatterData, 0, len(segments)+1)

	fn := inv.Source()

	appendKnot := func(x float64) {
		labels = append(labels, formatLabel(x))
		data = append(data, opts.ScatterData{
			Value:      []any{formatLabel(x), fn(x)},
			SymbolSize: knotSymbol,
		})
	}

	for _, seg := range segments {
		appendKnot(seg.XLo)
	}

	if len(segments) > 0 {
		appendKnot(segments[len(segments)-1].XHi)
	}

	scatter := charts.NewScatter()
	scatter.SetXAxis(labels)
	scatter.AddSeries("Knots", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.Semantic.Good}),
	)

	return scatter
}

// buildErrorChart plots the absolute approximation error over the
// interval.
func buildErrorChart(inv *piecewise.Inverter, palette ChartPalette) components.Charter {
	labels, xs := probeGrid(inv)

	data := make([]opts.LineData, len(xs))
	fn := inv.Source()

	for i, x := range xs {
		approx, err := inv.Forward(x)
		if err != nil {
			data[i] = opts.LineData{Value: 0.0}

			continue
		}

		data[i] = opts.LineData{Value: math.Abs(approx - fn(x))}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: palette.Background,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Approximation error",
			Subtitle: "|chord - B(d)| over the interval",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Distance [mm]"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Error [mT]"}),
	)
	line.SetXAxis(labels)

	line.AddSeries("abs error", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.Semantic.Bad}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)

	return line
}

// probeGrid samples the inverter's interval at curveProbes points
// inside [lo, hi).
func probeGrid(inv *piecewise.Inverter) (labels []string, xs []float64) {
	lo, hi := inv.Interval()
	step := (hi - lo) / curveProbes

	labels = make([]string, curveProbes)
	xs = make([]float64, curveProbes)

	for i := range curveProbes {
		x := lo + float64(i)*step
		xs[i] = x
		labels[i] = formatLabel(x)
	}

	return labels, xs
}

func formatLabel(x float64) string {
	return strconv.FormatFloat(x, 'f', labelDigits, 64)
}
