package collector

import (
	"context"
	"time"

	"steamdex/pkg/logger"
	"steamdex/pkg/models"
	"steamdex/pkg/steam"
)

// Status classifies the outcome of a per-item fetch.
type Status int

const (
	// StatusOK means a record was collected.
	StatusOK Status = iota
	// StatusAbsent means the remote service confirmed the item is not
	// applicable (not found, success=false, or not a game).
	StatusAbsent
	// StatusError means a transient failure (transport, server error,
	// malformed response). The item is skipped, never retried in-run.
	StatusError
)

// Outcome is the typed result of fetching one identifier.
type Outcome struct {
	Status Status
	Record *models.GameRecord
	Err    error
}

// Fetcher assembles a GameRecord for one identifier from several dependent
// Steam requests, pausing between them to respect the service's implicit
// rate limits.
type Fetcher struct {
	api    SteamAPI
	pause  time.Duration
	logger logger.Logger
	now    func() time.Time
}

// NewFetcher creates a per-item fetcher. pause is the delay between
// dependent sub-requests for the same item.
func NewFetcher(api SteamAPI, pause time.Duration, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Fetcher{
		api:    api,
		pause:  pause,
		logger: log,
		now:    time.Now,
	}
}

// FetchGame collects all attributes for one app. Store details decide
// whether the item exists and is a game; the remaining sub-requests fill
// optional attributes and are never fatal.
func (f *Fetcher) FetchGame(ctx context.Context, appID int) Outcome {
	details, err := f.api.GetAppDetails(ctx, appID)
	if err != nil {
		if steam.IsNotFound(err) {
			return Outcome{Status: StatusAbsent, Err: err}
		}
		return Outcome{Status: StatusError, Err: err}
	}

	// Only full games are collected; DLC, soundtracks etc. are absent.
	if details.Type != "game" {
		return Outcome{Status: StatusAbsent}
	}

	record := &models.GameRecord{
		AppID:           appID,
		Name:            details.Name,
		Type:            details.Type,
		IsFree:          details.IsFree,
		Categories:      details.Categories,
		Genres:          details.Genres,
		PriceJPY:        details.PriceJPY,
		MetacriticScore: details.MetacriticScore,
	}

	f.sleep(ctx)
	if count, err := f.api.GetPlayerCount(ctx, appID); err == nil {
		record.PlayerCount = models.Int(count)
	} else {
		f.logger.DebugWithFields("player count unavailable", map[string]interface{}{
			"app_id": appID,
			"error":  err.Error(),
		})
	}

	f.sleep(ctx)
	if reviews, err := f.api.GetReviewSummary(ctx, appID); err == nil {
		record.TotalReviews = models.Int(reviews.TotalReviews)
		record.PositiveReviews = models.Int(reviews.PositiveReviews)
		record.NegativeReviews = models.Int(reviews.NegativeReviews)
	} else {
		f.logger.DebugWithFields("review summary unavailable", map[string]interface{}{
			"app_id": appID,
			"error":  err.Error(),
		})
	}

	f.sleep(ctx)
	if achievements, err := f.api.GetAchievementCount(ctx, appID); err == nil {
		record.TotalAchievements = models.Int(achievements)
	}

	record.CollectedAt = f.now()
	return Outcome{Status: StatusOK, Record: record}
}

func (f *Fetcher) sleep(ctx context.Context) {
	if f.pause <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(f.pause):
	}
}
