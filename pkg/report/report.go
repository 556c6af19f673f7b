// Package report renders analysis results as terminal tables and scores
// how well a sample fits a power-law distribution.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"steamdex/pkg/stats"
)

// Renderer writes tables to a single output stream.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(r.out)
	if title != "" {
		t.SetTitle(title)
	}
	return t
}

// Summary renders the descriptive statistics and the regression fit for one
// column.
func (r *Renderer) Summary(column string, a *stats.Analysis) {
	t := r.newTable(fmt.Sprintf("Summary: %s", column))
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"N", a.Summary.N},
		{"Sum", fmt.Sprintf("%.0f", a.Summary.Sum)},
		{"Mean", fmt.Sprintf("%.2f", a.Summary.Mean)},
		{"Median", fmt.Sprintf("%.2f", a.Summary.Median)},
		{"Std dev", fmt.Sprintf("%.2f", a.Summary.StdDev)},
		{"Min", fmt.Sprintf("%.0f", a.Summary.Min)},
		{"Max", fmt.Sprintf("%.0f", a.Summary.Max)},
		{"Mean/median", fmt.Sprintf("%.2f", a.MeanMedianRatio)},
		{"Gini", fmt.Sprintf("%.4f", a.Gini)},
	})
	if a.Fit != nil {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"Alpha", fmt.Sprintf("%.3f", a.Fit.Alpha)},
			{"Slope", fmt.Sprintf("%.3f", a.Fit.Slope)},
			{"Intercept", fmt.Sprintf("%.3f", a.Fit.Intercept)},
			{"R²", fmt.Sprintf("%.4f", a.Fit.R2)},
		})
	}
	t.Render()
}

// Concentration renders top-share ratios.
func (r *Renderer) Concentration(a *stats.Analysis) {
	t := r.newTable("Concentration")
	t.AppendHeader(table.Row{"Top share", "Fraction of total"})
	c := a.Concentration
	t.AppendRows([]table.Row{
		{"1%", fmt.Sprintf("%.1f%%", c.Top1*100)},
		{"5%", fmt.Sprintf("%.1f%%", c.Top5*100)},
		{"10%", fmt.Sprintf("%.1f%%", c.Top10*100)},
		{"20%", fmt.Sprintf("%.1f%%", c.Top20*100)},
		{"50%", fmt.Sprintf("%.1f%%", c.Top50*100)},
	})
	t.Render()
}

// RankedItem is one row of a top-k listing.
type RankedItem struct {
	Rank  int
	Name  string
	AppID int
	Value float64
}

// TopItems renders the k largest items of the analyzed column.
func (r *Renderer) TopItems(column string, items []RankedItem) {
	t := r.newTable(fmt.Sprintf("Top %d by %s", len(items), column))
	t.AppendHeader(table.Row{"Rank", "App ID", "Name", "Value"})
	for _, item := range items {
		t.AppendRow(table.Row{item.Rank, item.AppID, item.Name, fmt.Sprintf("%.0f", item.Value)})
	}
	t.Render()
}

// Verdict renders the scored power-law evaluation.
func (r *Renderer) Verdict(v Verdict) {
	t := r.newTable("Power-law fit")
	t.AppendHeader(table.Row{"Criterion", "Value", "Assessment", "Points"})
	for _, c := range v.Criteria {
		t.AppendRow(table.Row{c.Name, c.Value, c.Note, fmt.Sprintf("%.1f", c.Points)})
	}
	t.AppendFooter(table.Row{"Score", "", "", fmt.Sprintf("%.1f / %.0f", v.Score, v.MaxScore)})
	t.Render()
	fmt.Fprintf(r.out, "\n%s\n", v.Conclusion)
}
