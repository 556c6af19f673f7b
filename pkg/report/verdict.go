package report

import (
	"fmt"

	"steamdex/pkg/stats"
)

// Criterion is one scored check of the power-law evaluation.
type Criterion struct {
	Name   string
	Value  string
	Note   string
	Points float64
}

// Verdict is the aggregate of the five criteria, scored out of 5.
type Verdict struct {
	Criteria   []Criterion
	Score      float64
	MaxScore   float64
	Conclusion string
}

// Evaluate scores the analysis against five criteria: regression fit,
// exponent range, Gini coefficient, Pareto share of the top 20%, and
// concentration in the top 1%.
func Evaluate(a *stats.Analysis) Verdict {
	v := Verdict{MaxScore: 5}

	r2, alpha := 0.0, 0.0
	if a.Fit != nil {
		r2 = a.Fit.R2
		alpha = a.Fit.Alpha
	}

	add := func(c Criterion) {
		v.Criteria = append(v.Criteria, c)
		v.Score += c.Points
	}

	switch {
	case r2 > 0.95:
		add(Criterion{"R²", fmt.Sprintf("%.4f", r2), "very good fit (R² > 0.95)", 1})
	case r2 > 0.90:
		add(Criterion{"R²", fmt.Sprintf("%.4f", r2), "good fit (R² > 0.90)", 0.8})
	case r2 > 0.80:
		add(Criterion{"R²", fmt.Sprintf("%.4f", r2), "weak fit (R² > 0.80)", 0.5})
	default:
		add(Criterion{"R²", fmt.Sprintf("%.4f", r2), "poor fit", 0})
	}

	switch {
	case alpha > 1.0 && alpha < 3.0:
		add(Criterion{"Alpha", fmt.Sprintf("%.3f", alpha), "typical power-law range (1 < α < 3)", 1})
	case alpha > 0.5 && alpha <= 1.0:
		add(Criterion{"Alpha", fmt.Sprintf("%.3f", alpha), "extreme inequality (α ≤ 1)", 0.7})
	case alpha >= 3.0 && alpha < 4.0:
		add(Criterion{"Alpha", fmt.Sprintf("%.3f", alpha), "leans toward uniform (α ≥ 3)", 0.5})
	default:
		add(Criterion{"Alpha", fmt.Sprintf("%.3f", alpha), "outside typical range", 0})
	}

	switch {
	case a.Gini > 0.8:
		add(Criterion{"Gini", fmt.Sprintf("%.4f", a.Gini), "extreme inequality", 1})
	case a.Gini > 0.6:
		add(Criterion{"Gini", fmt.Sprintf("%.4f", a.Gini), "high inequality", 0.7})
	default:
		add(Criterion{"Gini", fmt.Sprintf("%.4f", a.Gini), "fairly even", 0.3})
	}

	top20 := a.Concentration.Top20
	switch {
	case top20 > 0.8:
		add(Criterion{"Top 20% share", fmt.Sprintf("%.1f%%", top20*100), "well beyond the Pareto principle (>80%)", 1})
	case top20 > 0.7:
		add(Criterion{"Top 20% share", fmt.Sprintf("%.1f%%", top20*100), "close to the Pareto principle", 0.8})
	default:
		add(Criterion{"Top 20% share", fmt.Sprintf("%.1f%%", top20*100), "less extreme than the Pareto principle", 0.5})
	}

	top1 := a.Concentration.Top1
	switch {
	case top1 > 0.5:
		add(Criterion{"Top 1% share", fmt.Sprintf("%.1f%%", top1*100), "extreme concentration (>50%)", 1})
	case top1 > 0.3:
		add(Criterion{"Top 1% share", fmt.Sprintf("%.1f%%", top1*100), "high concentration", 0.7})
	default:
		add(Criterion{"Top 1% share", fmt.Sprintf("%.1f%%", top1*100), "somewhat dispersed", 0.3})
	}

	switch {
	case v.Score >= 4.5:
		v.Conclusion = "The values follow a very strong power-law distribution."
	case v.Score >= 3.5:
		v.Conclusion = "The values follow a clear power-law distribution."
	case v.Score >= 2.5:
		v.Conclusion = "The values show a power-law tendency, but a weak one."
	default:
		v.Conclusion = "The values do not appear to follow a power-law distribution."
	}
	return v
}
