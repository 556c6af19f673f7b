package collector

import (
	"context"

	"steamdex/pkg/checkpoint"
	"steamdex/pkg/models"
	"steamdex/pkg/steam"
)

// SteamAPI is the slice of the Steam client the per-item fetcher needs.
// Defined here so tests can substitute a fake.
type SteamAPI interface {
	GetAppDetails(ctx context.Context, appID int) (*steam.AppDetails, error)
	GetPlayerCount(ctx context.Context, appID int) (int, error)
	GetReviewSummary(ctx context.Context, appID int) (*steam.ReviewSummary, error)
	GetAchievementCount(ctx context.Context, appID int) (int, error)
}

// ItemFetcher fetches all attributes for a single identifier.
type ItemFetcher interface {
	FetchGame(ctx context.Context, appID int) Outcome
}

// Checkpointer persists collection progress. Implemented by
// checkpoint.Manager.
type Checkpointer interface {
	Save(records []models.GameRecord, progress int) error
	LoadLatest(maxProgress int) (*checkpoint.Snapshot, error)
}
