// Package sample draws uniform random subsets of app identifiers.
package sample

import (
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyUniverse is returned when there is nothing to sample from.
var ErrEmptyUniverse = errors.New("sample: empty identifier universe")

// Pick returns a uniform random subset of universe without replacement,
// sized min(target, len(universe)). The input slice is not modified.
//
// With Seeded set, the same seed and the same universe always yield the
// same subset.
func Pick(universe []int, target int, opts Options) ([]int, error) {
	if len(universe) == 0 {
		return nil, ErrEmptyUniverse
	}
	if target < 0 {
		target = 0
	}
	if target > len(universe) {
		target = len(universe)
	}

	seed := opts.Seed
	if !opts.Seeded {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	picked := make([]int, 0, target)
	for _, idx := range rng.Perm(len(universe))[:target] {
		picked = append(picked, universe[idx])
	}
	return picked, nil
}

// Options controls sampling reproducibility.
type Options struct {
	// Seed is used when Seeded is true; runs with the same seed and
	// universe are reproducible.
	Seed   int64
	Seeded bool
}
