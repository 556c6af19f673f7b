package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GameRecord is one collected title. A record is immutable once appended to
// a result set; optional attributes are nil when the remote API had nothing
// for them.
type GameRecord struct {
	AppID             int       `json:"app_id"`
	Name              string    `json:"name,omitempty"`
	Type              string    `json:"type"`
	IsFree            bool      `json:"is_free"`
	Categories        []string  `json:"categories"`
	Genres            []string  `json:"genres"`
	PriceJPY          *float64  `json:"price_jpy"`
	MetacriticScore   *int      `json:"metacritic_score"`
	PlayerCount       *int      `json:"player_count"`
	TotalReviews      *int      `json:"total_reviews"`
	PositiveReviews   *int      `json:"positive_reviews"`
	NegativeReviews   *int      `json:"negative_reviews"`
	TotalAchievements *int      `json:"total_achievements"`
	CollectedAt       time.Time `json:"collected_at"`
}

// CSVHeader is the fixed column order for tabular exports. Readers and
// writers must agree on it; list fields (categories, genres) are joined
// with "|" in tabular formats.
var CSVHeader = []string{
	"app_id",
	"player_count",
	"type",
	"is_free",
	"categories",
	"genres",
	"price_jpy",
	"metacritic_score",
	"total_reviews",
	"positive_reviews",
	"negative_reviews",
	"total_achievements",
	"collected_at",
}

// CSVRow renders the record in CSVHeader order. Nil attributes become
// empty cells.
func (r GameRecord) CSVRow() []string {
	return []string{
		strconv.Itoa(r.AppID),
		intCell(r.PlayerCount),
		r.Type,
		strconv.FormatBool(r.IsFree),
		strings.Join(r.Categories, "|"),
		strings.Join(r.Genres, "|"),
		floatCell(r.PriceJPY),
		intCell(r.MetacriticScore),
		intCell(r.TotalReviews),
		intCell(r.PositiveReviews),
		intCell(r.NegativeReviews),
		intCell(r.TotalAchievements),
		r.CollectedAt.Format(time.RFC3339),
	}
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// AppIDs returns the identifiers present in the record set, in order.
func AppIDs(records []GameRecord) []int {
	ids := make([]int, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.AppID)
	}
	return ids
}

// IDSet builds the processed-ID set implied by a record set. The result set
// holds at most one record per identifier, so the set and the records are
// always the same size.
func IDSet(records []GameRecord) map[int]bool {
	set := make(map[int]bool, len(records))
	for _, r := range records {
		set[r.AppID] = true
	}
	return set
}

// Int returns a pointer to v, for filling optional record fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

func (r GameRecord) String() string {
	return fmt.Sprintf("GameRecord(app_id=%d, type=%s)", r.AppID, r.Type)
}
