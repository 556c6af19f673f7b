package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steamdex/pkg/stats"
)

// powerLawSample is an exact power law, v = 1000 / rank.
func powerLawSample(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = 1000 / float64(i+1)
	}
	return values
}

func TestEvaluateStrongPowerLaw(t *testing.T) {
	a, err := stats.Analyze(powerLawSample(200))
	require.NoError(t, err)

	v := Evaluate(a)
	assert.Len(t, v.Criteria, 5)
	assert.Equal(t, 5.0, v.MaxScore)
	// An exact power law with alpha 1.0 still loses points on the alpha
	// range and concentration criteria.
	assert.GreaterOrEqual(t, v.Score, 3.0)
	assert.Contains(t, v.Conclusion, "power-law")
}

func TestEvaluateUniformSample(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = 10
	}

	a, err := stats.Analyze(values)
	require.NoError(t, err)

	v := Evaluate(a)
	assert.Less(t, v.Score, 2.5)
	assert.Contains(t, v.Conclusion, "do not appear")
}

func TestEvaluateScoreIsSumOfCriteria(t *testing.T) {
	a, err := stats.Analyze(powerLawSample(50))
	require.NoError(t, err)

	v := Evaluate(a)
	var sum float64
	for _, c := range v.Criteria {
		sum += c.Points
	}
	assert.InDelta(t, v.Score, sum, 1e-9)
}

func TestRendererOutput(t *testing.T) {
	a, err := stats.Analyze(powerLawSample(100))
	require.NoError(t, err)

	var buf bytes.Buffer
	r := NewRenderer(&buf)
	r.Summary("player_count", a)
	r.Concentration(a)
	r.TopItems("player_count", []RankedItem{
		{Rank: 1, AppID: 440, Name: "Team Fortress 2", Value: 1000},
	})
	r.Verdict(Evaluate(a))

	out := buf.String()
	assert.Contains(t, out, "player_count")
	assert.Contains(t, out, "Gini")
	assert.Contains(t, out, "Team Fortress 2")
	assert.Contains(t, out, "Score")
	assert.True(t, strings.Contains(out, "power-law") || strings.Contains(out, "tendency"))
}

func TestPlotSetRendersFiles(t *testing.T) {
	sample := powerLawSample(100)
	a, err := stats.Analyze(sample)
	require.NoError(t, err)

	dir := t.TempDir()
	plots, err := NewPlotSet(dir, "player_count")
	require.NoError(t, err)

	paths, err := plots.RenderAll(sample, a)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, p := range paths {
		assert.Equal(t, dir, filepath.Dir(p))
		assert.Equal(t, ".png", filepath.Ext(p))
	}
}
