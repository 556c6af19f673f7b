// Package collector drives the sequential bulk collection of game records.
//
// The Collector visits each sampled identifier exactly once, with a fixed
// delay between items and periodic full checkpoints. The per-item Fetcher
// issues the dependent Steam requests for one title (details, players,
// reviews, achievements) with a shorter pause between them. Items the
// service confirms as not applicable and items that fail transiently are
// both skipped and counted separately; nothing is retried within a run,
// re-running with resume picks failures up again.
package collector
