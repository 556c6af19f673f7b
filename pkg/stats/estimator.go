// Package stats computes descriptive and power-law statistics over a
// nonnegative numeric sample: rank-size log-log regression, Gini
// coefficient, top-share concentration, and CCDF/Lorenz series.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when a sample is empty after filtering
// non-positive values. Log transforms are undefined for zero and negative
// values, so callers must check before proceeding.
var ErrNoData = errors.New("stats: no positive values in sample")

// Summary holds basic descriptive statistics.
type Summary struct {
	N      int
	Sum    float64
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// PowerLawFit is the result of the rank-size log-log regression: values
// sorted descending, ranks 1..n, log10(value) regressed on log10(rank).
// Alpha is the power-law exponent, the negation of the slope.
type PowerLawFit struct {
	Slope     float64
	Intercept float64
	R2        float64
	Alpha     float64
}

// Concentration holds top-share ratios: the fraction of the total sum
// contributed by the largest 1%, 5%, 10%, 20% and 50% of the sample.
type Concentration struct {
	Top1  float64
	Top5  float64
	Top10 float64
	Top20 float64
	Top50 float64
}

// Point is a generic (x, y) pair for CCDF and Lorenz series.
type Point struct {
	X float64
	Y float64
}

// Analysis is the full estimator output for one sample.
type Analysis struct {
	Summary Summary
	// Fit is nil when the sample has fewer than two values.
	Fit           *PowerLawFit
	Gini          float64
	Concentration Concentration
	// MeanMedianRatio > 2 is the long-tail heuristic.
	MeanMedianRatio float64
}

// Analyze filters non-positive values out of sample and computes the full
// analysis. Returns ErrNoData when nothing positive remains.
func Analyze(sample []float64) (*Analysis, error) {
	positive := filterPositive(sample)
	if len(positive) == 0 {
		return nil, ErrNoData
	}

	asc := make([]float64, len(positive))
	copy(asc, positive)
	sort.Float64s(asc)

	desc := make([]float64, len(asc))
	for i, v := range asc {
		desc[len(asc)-1-i] = v
	}

	summary := summarize(asc)
	analysis := &Analysis{
		Summary:       summary,
		Fit:           fitRankSize(desc),
		Gini:          gini(asc),
		Concentration: concentration(desc, summary.Sum),
	}
	if summary.Median > 0 {
		analysis.MeanMedianRatio = summary.Mean / summary.Median
	}
	return analysis, nil
}

func filterPositive(sample []float64) []float64 {
	out := make([]float64, 0, len(sample))
	for _, v := range sample {
		if v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// summarize computes descriptive statistics over an ascending-sorted
// sample.
func summarize(asc []float64) Summary {
	s := Summary{
		N:    len(asc),
		Sum:  floats.Sum(asc),
		Min:  asc[0],
		Max:  asc[len(asc)-1],
		Mean: stat.Mean(asc, nil),
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, asc, nil)
	if len(asc) > 1 {
		s.StdDev = stat.StdDev(asc, nil)
	}
	return s
}

// fitRankSize regresses log10(value) on log10(rank) over the
// descending-sorted sample. Needs at least two values.
func fitRankSize(desc []float64) *PowerLawFit {
	if len(desc) < 2 {
		return nil
	}

	logRanks := make([]float64, len(desc))
	logValues := make([]float64, len(desc))
	for i, v := range desc {
		logRanks[i] = math.Log10(float64(i + 1))
		logValues[i] = math.Log10(v)
	}

	intercept, slope := stat.LinearRegression(logRanks, logValues, nil, false)
	r2 := stat.RSquared(logRanks, logValues, nil, intercept, slope)

	return &PowerLawFit{
		Slope:     slope,
		Intercept: intercept,
		R2:        r2,
		Alpha:     -slope,
	}
}

// gini computes the Gini coefficient with the rank-weighted formula
// G = 2*Σ(i*x_i) / (n*Σx) - (n+1)/n over the ascending-sorted sample.
func gini(asc []float64) float64 {
	n := float64(len(asc))
	total := floats.Sum(asc)
	if total == 0 {
		return 0
	}

	var weighted float64
	for i, v := range asc {
		weighted += float64(i+1) * v
	}
	return 2*weighted/(n*total) - (n+1)/n
}

// concentration computes top-share ratios over the descending-sorted
// sample. Each share takes at least one value.
func concentration(desc []float64, total float64) Concentration {
	if total == 0 {
		return Concentration{}
	}
	topShare := func(fraction float64) float64 {
		k := int(float64(len(desc)) * fraction)
		if k < 1 {
			k = 1
		}
		return floats.Sum(desc[:k]) / total
	}
	return Concentration{
		Top1:  topShare(0.01),
		Top5:  topShare(0.05),
		Top10: topShare(0.10),
		Top20: topShare(0.20),
		Top50: topShare(0.50),
	}
}

// CCDF returns the complementary cumulative distribution P(X >= x) at each
// distinct value of the sample, ascending in x. Non-positive values are
// filtered first.
func CCDF(sample []float64) []Point {
	positive := filterPositive(sample)
	if len(positive) == 0 {
		return nil
	}
	sort.Float64s(positive)

	n := float64(len(positive))
	points := make([]Point, 0, len(positive))
	for i := 0; i < len(positive); i++ {
		// Skip duplicates; P(X >= x) counts from the first occurrence.
		if i > 0 && positive[i] == positive[i-1] {
			continue
		}
		points = append(points, Point{
			X: positive[i],
			Y: float64(len(positive)-i) / n,
		})
	}
	return points
}

// Lorenz returns the Lorenz curve of the sample: cumulative population
// share on X against cumulative value share on Y, both in [0,1].
// Non-positive values are filtered first.
func Lorenz(sample []float64) []Point {
	positive := filterPositive(sample)
	if len(positive) == 0 {
		return nil
	}
	sort.Float64s(positive)

	total := floats.Sum(positive)
	n := float64(len(positive))

	points := make([]Point, 0, len(positive)+1)
	points = append(points, Point{X: 0, Y: 0})
	var cumulative float64
	for i, v := range positive {
		cumulative += v
		points = append(points, Point{
			X: float64(i+1) / n,
			Y: cumulative / total,
		})
	}
	return points
}

// FittedValue evaluates the regression line in linear space at the given
// rank.
func (f *PowerLawFit) FittedValue(rank int) float64 {
	logV := f.Intercept + f.Slope*math.Log10(float64(rank))
	return math.Pow(10, logV)
}
