// Package report renders fitted feature distributions as an HTML page of
// histograms overlaid with the fitted density.
package report

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/TrevorS/morphstats/internal/extract"
)

const maxBins = 50

// Histogram is a binned sample.
type Histogram struct {
	// Dividers has one more entry than Counts; bin i is
	// [Dividers[i], Dividers[i+1]).
	Dividers []float64
	Counts   []float64
}

// NewHistogram bins x into about sqrt(len(x)) equal-width bins, at most 50.
// A sample with a single distinct value gets one unit-width bin around it.
func NewHistogram(x []float64) Histogram {
	if len(x) == 0 {
		return Histogram{}
	}
	sorted := slices.Clone(x)
	slices.Sort(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	bins := int(math.Ceil(math.Sqrt(float64(len(sorted)))))
	bins = min(max(bins, 1), maxBins)
	if lo == hi {
		lo, hi, bins = lo-0.5, hi+0.5, 1
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram requires every value to be strictly below the last
	// divider.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)
	return Histogram{Dividers: dividers, Counts: counts}
}

// Centers returns the midpoint of every bin.
func (h Histogram) Centers() []float64 {
	if len(h.Dividers) < 2 {
		return nil
	}
	c := make([]float64, len(h.Dividers)-1)
	for i := range c {
		c[i] = (h.Dividers[i] + h.Dividers[i+1]) / 2
	}
	return c
}

// Render writes an HTML page with one chart per distribution to w.
func Render(w io.Writer, population string, dists []extract.Distribution) error {
	page := components.NewPage()
	page.SetPageTitle(fmt.Sprintf("%s feature distributions", population))
	for _, d := range dists {
		chart, err := distributionChart(d)
		if err != nil {
			return err
		}
		page.AddCharts(chart)
	}
	return page.Render(w)
}

func distributionChart(d extract.Distribution) (*charts.Bar, error) {
	h := NewHistogram(d.Sample)
	centers := h.Centers()

	labels := make([]string, len(centers))
	for i, c := range centers {
		labels[i] = fmt.Sprintf("%.3g", c)
	}

	bars := make([]opts.BarData, len(h.Counts))
	for i, c := range h.Counts {
		bars[i] = opts.BarData{Value: c}
	}

	// Density scaled to expected counts per bin.
	n := float64(len(d.Sample))
	fitted := make([]opts.LineData, len(centers))
	for i, c := range centers {
		p, err := d.Fit.PDF(c)
		if err != nil {
			return nil, fmt.Errorf("report: %s: %w", d.Label(), err)
		}
		width := h.Dividers[i+1] - h.Dividers[i]
		fitted[i] = opts.LineData{Value: p * n * width}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    d.Label(),
			Subtitle: fmt.Sprintf("%s fit, n=%d, KS=%.4g", d.Dict.Type, len(d.Sample), d.Fit.Statistic()),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "5%"}),
	)
	bar.SetXAxis(labels).AddSeries("observed", bars)

	line := charts.NewLine()
	line.SetXAxis(labels).AddSeries("fitted "+d.Dict.Type, fitted,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(false)}))
	bar.Overlap(line)
	return bar, nil
}
