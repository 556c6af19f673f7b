package models

import (
	"testing"
	"time"
)

func TestCSVRowMatchesHeader(t *testing.T) {
	r := GameRecord{AppID: 440, Type: "game", CollectedAt: time.Now()}
	row := r.CSVRow()
	if len(row) != len(CSVHeader) {
		t.Fatalf("Row has %d cells, header has %d columns", len(row), len(CSVHeader))
	}
}

func TestCSVRowNilFieldsAreEmpty(t *testing.T) {
	r := GameRecord{
		AppID:       123,
		Type:        "game",
		CollectedAt: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
	}
	row := r.CSVRow()

	if row[0] != "123" {
		t.Errorf("Expected app_id cell 123, got %q", row[0])
	}
	// player_count, price_jpy, metacritic_score are all unset.
	for _, idx := range []int{1, 6, 7} {
		if row[idx] != "" {
			t.Errorf("Expected empty cell for %s, got %q", CSVHeader[idx], row[idx])
		}
	}
	if row[12] != "2026-08-28T09:00:00Z" {
		t.Errorf("Unexpected timestamp cell: %q", row[12])
	}
}

func TestCSVRowJoinsLists(t *testing.T) {
	r := GameRecord{
		AppID:      1,
		Type:       "game",
		Categories: []string{"Single-player", "Co-op"},
		Genres:     []string{"Action", "Indie"},
	}
	row := r.CSVRow()
	if row[4] != "Single-player|Co-op" {
		t.Errorf("Unexpected categories cell: %q", row[4])
	}
	if row[5] != "Action|Indie" {
		t.Errorf("Unexpected genres cell: %q", row[5])
	}
}

func TestIDSetMatchesAppIDs(t *testing.T) {
	records := []GameRecord{{AppID: 1}, {AppID: 2}, {AppID: 3}}

	ids := AppIDs(records)
	set := IDSet(records)
	if len(ids) != len(set) {
		t.Fatalf("Expected set and list to be the same size: %d vs %d", len(set), len(ids))
	}
	for _, id := range ids {
		if !set[id] {
			t.Errorf("Missing ID %d in set", id)
		}
	}
}
