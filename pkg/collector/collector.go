package collector

import (
	"context"
	"fmt"
	"time"

	"steamdex/pkg/logger"
	"steamdex/pkg/models"
)

// progressLogInterval controls how often the loop logs a progress line.
const progressLogInterval = 50

// Collector drives the sequential bulk-collection loop: fetch each
// identifier once, accumulate successful records, checkpoint periodically,
// and pace requests with a fixed delay. One identifier is fully processed
// before the next begins; no parallel requests are ever issued.
type Collector struct {
	fetcher     ItemFetcher
	checkpoints Checkpointer
	delay       time.Duration
	interval    int
	logger      logger.Logger

	stats RunStats
}

// New creates a Collector. interval is the number of processed items
// between checkpoint snapshots; delay is the pause after each item.
func New(fetcher ItemFetcher, checkpoints Checkpointer, delay time.Duration, interval int, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Nop()
	}
	if interval <= 0 {
		interval = 100
	}
	return &Collector{
		fetcher:     fetcher,
		checkpoints: checkpoints,
		delay:       delay,
		interval:    interval,
		logger:      log,
	}
}

// Stats returns the counters of the last (or current) run.
func (c *Collector) Stats() *RunStats {
	return &c.stats
}

// Run visits every identifier in appIDs exactly once and returns the
// accumulated records. With resume=true it first restores the newest
// readable checkpoint whose progress does not exceed len(appIDs) and skips
// identifiers already present in it.
//
// The accumulated set holds at most one record per identifier; the
// processed set is always exactly the identifiers present in the
// accumulator. Failures are counted and skipped, never retried in-run.
func (c *Collector) Run(ctx context.Context, appIDs []int, resume bool) ([]models.GameRecord, error) {
	if len(appIDs) == 0 {
		return nil, fmt.Errorf("empty identifier list")
	}

	c.stats = RunStats{
		TotalRequested: len(appIDs),
		StartTime:      time.Now(),
	}

	records := make([]models.GameRecord, 0, len(appIDs))
	processed := make(map[int]bool, len(appIDs))

	if resume && c.checkpoints != nil {
		snapshot, err := c.checkpoints.LoadLatest(len(appIDs))
		if err != nil {
			return nil, fmt.Errorf("failed to load checkpoint: %w", err)
		}
		if snapshot != nil {
			records = append(records, snapshot.Records...)
			processed = snapshot.Processed
			c.logger.InfoWithFields("resuming from checkpoint", map[string]interface{}{
				"progress": snapshot.Progress,
				"records":  len(snapshot.Records),
			})
		}
	}

	total := len(appIDs)
	for i, appID := range appIDs {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		position := i + 1
		if position == 1 || position%progressLogInterval == 0 {
			c.logProgress(position, total)
		}

		if processed[appID] {
			c.stats.Skipped++
		} else {
			c.processOne(ctx, appID, &records, processed)
		}

		// Checkpoint every interval items, and pace the next request.
		// No delay after the final item.
		if c.checkpoints != nil && position%c.interval == 0 {
			if err := c.checkpoints.Save(records, position); err != nil {
				c.logger.WithError(err).Warn("checkpoint write failed, continuing without it")
			}
		}
		if position < total {
			c.sleep(ctx)
		}
	}

	c.stats.EndTime = time.Now()
	c.logSummary()
	return records, nil
}

// processOne fetches a single identifier and folds the outcome into the
// accumulator and counters.
func (c *Collector) processOne(ctx context.Context, appID int, records *[]models.GameRecord, processed map[int]bool) {
	outcome := c.fetcher.FetchGame(ctx, appID)
	switch outcome.Status {
	case StatusOK:
		*records = append(*records, *outcome.Record)
		processed[appID] = true
		c.stats.Successful++
		if outcome.Record.PlayerCount != nil && *outcome.Record.PlayerCount > 0 {
			c.stats.WithPlayers++
		}
		if outcome.Record.MetacriticScore != nil {
			c.stats.WithMetacritic++
		}
	case StatusAbsent:
		c.stats.Absent++
		c.logger.DebugWithFields("app not applicable, skipping", map[string]interface{}{
			"app_id": appID,
		})
	case StatusError:
		c.stats.Errors++
		c.logger.WarnWithFields("fetch failed, skipping", map[string]interface{}{
			"app_id": appID,
			"error":  outcome.Err.Error(),
		})
	}
}

func (c *Collector) logProgress(position, total int) {
	elapsed := time.Since(c.stats.StartTime).Seconds()
	speed := 0.0
	if elapsed > 0 {
		speed = float64(position) / elapsed
	}
	remaining := time.Duration(0)
	if speed > 0 {
		remaining = time.Duration(float64(total-position)/speed) * time.Second
	}

	c.logger.InfoWithFields("collection progress", map[string]interface{}{
		"position":   position,
		"total":      total,
		"percent":    fmt.Sprintf("%.1f", float64(position)/float64(total)*100),
		"successful": c.stats.Successful,
		"failed":     c.stats.Failed(),
		"remaining":  remaining.Round(time.Second),
	})
}

func (c *Collector) logSummary() {
	c.logger.InfoWithFields("collection finished", map[string]interface{}{
		"requested":       c.stats.TotalRequested,
		"successful":      c.stats.Successful,
		"absent":          c.stats.Absent,
		"errors":          c.stats.Errors,
		"skipped":         c.stats.Skipped,
		"with_players":    c.stats.WithPlayers,
		"with_metacritic": c.stats.WithMetacritic,
		"duration":        c.stats.Duration().Round(time.Second),
	})
}

func (c *Collector) sleep(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(c.delay):
	}
}
