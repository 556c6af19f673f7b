package storage

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"steamdex/pkg/models"
)

// WriteXLSX writes the record set as a single-sheet workbook with the same
// column order as the CSV export and returns the full path.
func (m *Manager) WriteXLSX(name string, records []models.GameRecord) (string, error) {
	path := filepath.Join(m.dir, name)

	book := excelize.NewFile()
	defer book.Close()

	const sheet = "games"
	index, err := book.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	book.SetActiveSheet(index)
	book.DeleteSheet("Sheet1")

	header := make([]interface{}, len(models.CSVHeader))
	for i, name := range models.CSVHeader {
		header[i] = name
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header row: %w", err)
	}

	for i, record := range records {
		row := csvRowToCells(record)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := book.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	m.logger.InfoWithFields("results written", map[string]interface{}{
		"file":    path,
		"records": len(records),
	})
	return path, nil
}

// csvRowToCells keeps numeric attributes numeric in the workbook instead of
// flattening everything to strings.
func csvRowToCells(r models.GameRecord) []interface{} {
	cells := make([]interface{}, 0, len(models.CSVHeader))
	cells = append(cells, r.AppID)
	cells = append(cells, intOrBlank(r.PlayerCount))
	cells = append(cells, r.Type)
	cells = append(cells, r.IsFree)

	row := r.CSVRow()
	cells = append(cells, row[4], row[5]) // categories, genres

	if r.PriceJPY != nil {
		cells = append(cells, *r.PriceJPY)
	} else {
		cells = append(cells, "")
	}
	cells = append(cells,
		intOrBlank(r.MetacriticScore),
		intOrBlank(r.TotalReviews),
		intOrBlank(r.PositiveReviews),
		intOrBlank(r.NegativeReviews),
		intOrBlank(r.TotalAchievements),
		row[12], // collected_at
	)
	return cells
}

func intOrBlank(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
