package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"steamdex/pkg/models"
)

const createGamesTable = `
CREATE TABLE IF NOT EXISTS games (
	app_id             INTEGER PRIMARY KEY,
	name               TEXT,
	type               TEXT NOT NULL,
	is_free            INTEGER NOT NULL,
	categories         TEXT,
	genres             TEXT,
	price_jpy          REAL,
	metacritic_score   INTEGER,
	player_count       INTEGER,
	total_reviews      INTEGER,
	positive_reviews   INTEGER,
	negative_reviews   INTEGER,
	total_achievements INTEGER,
	collected_at       TEXT NOT NULL
)`

// WriteSQLite writes the record set into a games table in a SQLite database
// under the output directory, replacing rows with the same app_id. All
// inserts run in one transaction.
func (m *Manager) WriteSQLite(name string, records []models.GameRecord) (string, error) {
	path := filepath.Join(m.dir, name)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(createGamesTable); err != nil {
		return "", fmt.Errorf("failed to create games table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games (
			app_id, name, type, is_free, categories, genres, price_jpy,
			metacritic_score, player_count, total_reviews, positive_reviews,
			negative_reviews, total_achievements, collected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		isFree := 0
		if r.IsFree {
			isFree = 1
		}
		_, err := stmt.Exec(
			r.AppID,
			r.Name,
			r.Type,
			isFree,
			strings.Join(r.Categories, "|"),
			strings.Join(r.Genres, "|"),
			nullFloat(r.PriceJPY),
			nullInt(r.MetacriticScore),
			nullInt(r.PlayerCount),
			nullInt(r.TotalReviews),
			nullInt(r.PositiveReviews),
			nullInt(r.NegativeReviews),
			nullInt(r.TotalAchievements),
			r.CollectedAt.Format(time.RFC3339),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert app %d: %w", r.AppID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	m.logger.InfoWithFields("results written", map[string]interface{}{
		"file":    path,
		"records": len(records),
	})
	return path, nil
}

func nullInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
