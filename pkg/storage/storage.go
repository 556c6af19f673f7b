// Package storage persists collected record sets as JSON, CSV, XLSX and
// SQLite, and reads them back for analysis. JSON and CSV writes are
// atomic: a temp file in the destination directory followed by a rename.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"steamdex/pkg/logger"
	"steamdex/pkg/models"
)

// Manager writes result files under a single output directory.
type Manager struct {
	dir    string
	logger logger.Logger
}

// NewManager creates the output directory if needed.
func NewManager(dir string, log logger.Logger) (*Manager, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{dir: dir, logger: log}, nil
}

// Dir returns the output directory.
func (m *Manager) Dir() string {
	return m.dir
}

// WriteJSON writes the record set as an indented JSON array and returns the
// full path.
func (m *Manager) WriteJSON(name string, records []models.GameRecord) (string, error) {
	path := filepath.Join(m.dir, name)
	if err := writeAtomic(path, func(f *os.File) error {
		encoder := json.NewEncoder(f)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}); err != nil {
		return "", fmt.Errorf("failed to write JSON output: %w", err)
	}

	m.logger.InfoWithFields("results written", map[string]interface{}{
		"file":    path,
		"records": len(records),
	})
	return path, nil
}

// WriteCSV writes the record set with the fixed models.CSVHeader column
// order and returns the full path.
func (m *Manager) WriteCSV(name string, records []models.GameRecord) (string, error) {
	path := filepath.Join(m.dir, name)
	if err := writeAtomic(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(models.CSVHeader); err != nil {
			return err
		}
		for _, r := range records {
			if err := w.Write(r.CSVRow()); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}); err != nil {
		return "", fmt.Errorf("failed to write CSV output: %w", err)
	}

	m.logger.InfoWithFields("results written", map[string]interface{}{
		"file":    path,
		"records": len(records),
	})
	return path, nil
}

// writeAtomic runs fill against a temp file and renames it over path on
// success.
func writeAtomic(path string, fill func(*os.File) error) error {
	tempPath := path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	if err := fill(file); err != nil {
		file.Close()
		os.Remove(tempPath)
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// ReadRecordsJSON loads a record set previously written by WriteJSON.
func ReadRecordsJSON(path string) ([]models.GameRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var records []models.GameRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// ReadRecordsCSV loads a record set previously written by WriteCSV. Columns
// are matched by header name, so reordered files still parse.
func ReadRecordsCSV(path string) ([]models.GameRecord, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["app_id"]; !ok {
		return nil, fmt.Errorf("%s: missing app_id column", path)
	}

	records := make([]models.GameRecord, 0, len(rows))
	for i, row := range rows {
		cell := func(name string) string {
			idx, ok := col[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		appID, err := strconv.Atoi(cell("app_id"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad app_id %q", path, i+2, cell("app_id"))
		}

		r := models.GameRecord{
			AppID:      appID,
			Type:       cell("type"),
			IsFree:     cell("is_free") == "true",
			Categories: splitList(cell("categories")),
			Genres:     splitList(cell("genres")),
		}
		r.PlayerCount = parseIntCell(cell("player_count"))
		r.MetacriticScore = parseIntCell(cell("metacritic_score"))
		r.TotalReviews = parseIntCell(cell("total_reviews"))
		r.PositiveReviews = parseIntCell(cell("positive_reviews"))
		r.NegativeReviews = parseIntCell(cell("negative_reviews"))
		r.TotalAchievements = parseIntCell(cell("total_achievements"))
		r.PriceJPY = parseFloatCell(cell("price_jpy"))
		if ts := cell("collected_at"); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				r.CollectedAt = t
			}
		}
		records = append(records, r)
	}
	return records, nil
}

// ReadColumnCSV extracts one numeric column by header name. Empty and
// non-numeric cells are skipped, not errors; analysis treats missing
// attributes as absent, not zero.
func ReadColumnCSV(path, column string) ([]float64, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s: no column named %q (have %s)", path, column, strings.Join(header, ", "))
	}

	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

func readCSV(path string) (header []string, rows [][]string, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}
	return all[0], all[1:], nil
}

func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, "|")
}

func parseIntCell(cell string) *int {
	if cell == "" {
		return nil
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return nil
	}
	return models.Int(v)
}

func parseFloatCell(cell string) *float64 {
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return models.Float(v)
}
