package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"steamdex/pkg/stats"
)

// PlotSet renders the four diagnostic plots of one analysis as PNG files
// under a directory.
type PlotSet struct {
	dir    string
	column string
}

// NewPlotSet creates the plot directory if needed.
func NewPlotSet(dir, column string) (*PlotSet, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create plot directory: %w", err)
	}
	return &PlotSet{dir: dir, column: column}, nil
}

// RenderAll writes every plot and returns the file paths.
func (p *PlotSet) RenderAll(sample []float64, a *stats.Analysis) ([]string, error) {
	type renderer struct {
		name   string
		render func(string) error
	}
	renderers := []renderer{
		{"rank_size.png", func(path string) error { return p.rankSize(path, sample, a.Fit) }},
		{"ccdf.png", func(path string) error { return p.ccdf(path, sample) }},
		{"lorenz.png", func(path string) error { return p.lorenz(path, sample) }},
		{"histogram.png", func(path string) error { return p.logHistogram(path, sample) }},
	}

	paths := make([]string, 0, len(renderers))
	for _, r := range renderers {
		path := filepath.Join(p.dir, fmt.Sprintf("%s_%s", p.column, r.name))
		if err := r.render(path); err != nil {
			return paths, fmt.Errorf("failed to render %s: %w", r.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// rankSize plots log-log rank against value with the fitted regression
// line overlaid.
func (p *PlotSet) rankSize(path string, sample []float64, fit *stats.PowerLawFit) error {
	desc := positiveDescending(sample)
	if len(desc) == 0 {
		return fmt.Errorf("no positive values")
	}

	pts := make(plotter.XYs, len(desc))
	for i, v := range desc {
		pts[i] = plotter.XY{X: float64(i + 1), Y: v}
	}

	pl := p.newLogLogPlot(fmt.Sprintf("Rank-size: %s", p.column), "Rank", p.column)

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	pl.Add(scatter)

	if fit != nil {
		linePts := plotter.XYs{
			{X: 1, Y: fit.FittedValue(1)},
			{X: float64(len(desc)), Y: fit.FittedValue(len(desc))},
		}
		line, err := plotter.NewLine(linePts)
		if err != nil {
			return err
		}
		line.Color = color.RGBA{R: 220, A: 255}
		pl.Add(line)
		pl.Legend.Add(fmt.Sprintf("fit α=%.2f R²=%.3f", fit.Alpha, fit.R2), line)
	}

	return pl.Save(6*vg.Inch, 4*vg.Inch, path)
}

func (p *PlotSet) ccdf(path string, sample []float64) error {
	points := stats.CCDF(sample)
	if len(points) == 0 {
		return fmt.Errorf("no positive values")
	}

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}

	pl := p.newLogLogPlot(fmt.Sprintf("CCDF: %s", p.column), p.column, "P(X ≥ x)")
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	pl.Add(scatter)

	return pl.Save(6*vg.Inch, 4*vg.Inch, path)
}

func (p *PlotSet) lorenz(path string, sample []float64) error {
	points := stats.Lorenz(sample)
	if len(points) == 0 {
		return fmt.Errorf("no positive values")
	}

	pts := make(plotter.XYs, len(points))
	for i, pt := range points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Lorenz curve: %s", p.column)
	pl.X.Label.Text = "Cumulative population share"
	pl.Y.Label.Text = "Cumulative value share"

	curve, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	pl.Add(curve)

	// Equality diagonal for reference.
	diagonal, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return err
	}
	diagonal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	diagonal.Color = color.Gray{Y: 128}
	pl.Add(diagonal)

	return pl.Save(6*vg.Inch, 4*vg.Inch, path)
}

// logHistogram plots the distribution of log10(value); the bulk of a
// heavy-tailed sample is invisible on a linear axis.
func (p *PlotSet) logHistogram(path string, sample []float64) error {
	values := make(plotter.Values, 0, len(sample))
	for _, v := range sample {
		if v > 0 {
			values = append(values, math.Log10(v))
		}
	}
	if len(values) == 0 {
		return fmt.Errorf("no positive values")
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Distribution of log10(%s)", p.column)
	pl.X.Label.Text = fmt.Sprintf("log10(%s)", p.column)
	pl.Y.Label.Text = "Count"

	hist, err := plotter.NewHist(values, 30)
	if err != nil {
		return err
	}
	pl.Add(hist)

	return pl.Save(6*vg.Inch, 4*vg.Inch, path)
}

func (p *PlotSet) newLogLogPlot(title, xLabel, yLabel string) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = xLabel
	pl.Y.Label.Text = yLabel
	pl.X.Scale = plot.LogScale{}
	pl.Y.Scale = plot.LogScale{}
	pl.X.Tick.Marker = plot.LogTicks{Prec: -1}
	pl.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	return pl
}

func positiveDescending(sample []float64) []float64 {
	out := make([]float64, 0, len(sample))
	for _, v := range sample {
		if v > 0 {
			out = append(out, v)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
