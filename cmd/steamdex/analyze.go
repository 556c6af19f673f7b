package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"steamdex/pkg/models"
	"steamdex/pkg/report"
	"steamdex/pkg/stats"
	"steamdex/pkg/storage"
	"steamdex/pkg/ui"
)

var (
	// Analyze command flags
	analyzeColumn string
	analyzeTop    int
	renderPlots   bool
	plotDir       string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze the distribution of a collected data column",
	Long: `Analyze one numeric column of a collected result file (CSV or JSON):
descriptive statistics, rank-size power-law regression, Gini coefficient,
top-share concentration, and a scored verdict of how well the values fit a
power-law distribution.

Rows with an empty or non-positive value are excluded; log transforms are
undefined for them.`,
	Example: `  # Analyze player counts
  steamdex analyze data/steam_random_20260828_120000.csv

  # Analyze review counts and render diagnostic plots
  steamdex analyze data/results.csv --column total_reviews --plots

  # Show the 25 largest titles
  steamdex analyze data/results.json --top 25`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeColumn, "column", "player_count", "numeric column to analyze")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 10, "number of top titles to list")
	analyzeCmd.Flags().BoolVar(&renderPlots, "plots", false, "render diagnostic plots as PNG files")
	analyzeCmd.Flags().StringVar(&plotDir, "plot-dir", "", "directory for plot files (default: next to the input)")
}

func runAnalyze(path string) error {
	values, records, err := loadColumn(path, analyzeColumn)
	if err != nil {
		ui.PrintError("Failed to load input", err.Error())
		return err
	}

	analysis, err := stats.Analyze(values)
	if err != nil {
		ui.PrintError("Analysis failed", err.Error())
		return err
	}

	renderer := report.NewRenderer(os.Stdout)
	renderer.Summary(analyzeColumn, analysis)
	renderer.Concentration(analysis)

	if len(records) > 0 && analyzeTop > 0 {
		renderer.TopItems(analyzeColumn, topItems(records, analyzeColumn, analyzeTop))
	}

	renderer.Verdict(report.Evaluate(analysis))

	if renderPlots {
		dir := plotDir
		if dir == "" {
			dir = filepath.Join(filepath.Dir(path), "plots")
		}
		plots, err := report.NewPlotSet(dir, analyzeColumn)
		if err != nil {
			ui.PrintError("Failed to set up plot directory", err.Error())
			return err
		}
		paths, err := plots.RenderAll(values, analysis)
		if err != nil {
			ui.PrintError("Failed to render plots", err.Error())
			return err
		}
		for _, p := range paths {
			ui.PrintInfo("Plot", p)
		}
	}

	return nil
}

// loadColumn reads the requested column from a CSV or JSON result file.
// Records come back too when the format carries them, for the top-k table.
func loadColumn(path, column string) ([]float64, []models.GameRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		records, err := storage.ReadRecordsJSON(path)
		if err != nil {
			return nil, nil, err
		}
		values := make([]float64, 0, len(records))
		for _, r := range records {
			if v, ok := recordValue(r, column); ok {
				values = append(values, v)
			}
		}
		return values, records, nil
	case ".csv":
		values, err := storage.ReadColumnCSV(path, column)
		if err != nil {
			return nil, nil, err
		}
		records, err := storage.ReadRecordsCSV(path)
		if err != nil {
			// The column alone is enough for the analysis.
			records = nil
		}
		return values, records, nil
	default:
		return nil, nil, fmt.Errorf("unsupported input format: %s", path)
	}
}

// recordValue extracts a numeric attribute by column name. Nil attributes
// report ok=false.
func recordValue(r models.GameRecord, column string) (float64, bool) {
	fromInt := func(v *int) (float64, bool) {
		if v == nil {
			return 0, false
		}
		return float64(*v), true
	}

	switch column {
	case "player_count":
		return fromInt(r.PlayerCount)
	case "total_reviews":
		return fromInt(r.TotalReviews)
	case "positive_reviews":
		return fromInt(r.PositiveReviews)
	case "negative_reviews":
		return fromInt(r.NegativeReviews)
	case "metacritic_score":
		return fromInt(r.MetacriticScore)
	case "total_achievements":
		return fromInt(r.TotalAchievements)
	case "price_jpy":
		if r.PriceJPY == nil {
			return 0, false
		}
		return *r.PriceJPY, true
	case "app_id":
		return float64(r.AppID), true
	default:
		return 0, false
	}
}

func topItems(records []models.GameRecord, column string, k int) []report.RankedItem {
	type valued struct {
		record models.GameRecord
		value  float64
	}
	items := make([]valued, 0, len(records))
	for _, r := range records {
		if v, ok := recordValue(r, column); ok && v > 0 {
			items = append(items, valued{record: r, value: v})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].value > items[j].value
	})
	if k > len(items) {
		k = len(items)
	}

	ranked := make([]report.RankedItem, 0, k)
	for i := 0; i < k; i++ {
		ranked = append(ranked, report.RankedItem{
			Rank:  i + 1,
			Name:  items[i].record.Name,
			AppID: items[i].record.AppID,
			Value: items[i].value,
		})
	}
	return ranked
}
