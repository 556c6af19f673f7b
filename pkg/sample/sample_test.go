package sample

import (
	"errors"
	"testing"
)

func TestPickEmptyUniverse(t *testing.T) {
	_, err := Pick(nil, 10, Options{})
	if !errors.Is(err, ErrEmptyUniverse) {
		t.Fatalf("expected ErrEmptyUniverse, got %v", err)
	}
}

func TestPickClampsTarget(t *testing.T) {
	universe := []int{10, 20, 30}

	picked, err := Pick(universe, 100, Options{Seed: 1, Seeded: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picked) != len(universe) {
		t.Errorf("expected %d picks, got %d", len(universe), len(picked))
	}

	picked, err = Pick(universe, -5, Options{Seed: 1, Seeded: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picked) != 0 {
		t.Errorf("expected no picks for negative target, got %d", len(picked))
	}
}

func TestPickSeededIsDeterministic(t *testing.T) {
	universe := make([]int, 1000)
	for i := range universe {
		universe[i] = i + 1
	}

	first, err := Pick(universe, 50, Options{Seed: 42, Seeded: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Pick(universe, 50, Options{Seed: 42, Seeded: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 50 || len(second) != 50 {
		t.Fatalf("expected 50 picks, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed produced different picks at index %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestPickNoDuplicates(t *testing.T) {
	universe := make([]int, 200)
	for i := range universe {
		universe[i] = i
	}

	picked, err := Pick(universe, 150, Options{Seed: 7, Seeded: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int]bool, len(picked))
	for _, id := range picked {
		if seen[id] {
			t.Fatalf("duplicate pick: %d", id)
		}
		seen[id] = true
	}
}

func TestPickDoesNotModifyUniverse(t *testing.T) {
	universe := []int{1, 2, 3, 4, 5}
	original := []int{1, 2, 3, 4, 5}

	if _, err := Pick(universe, 3, Options{Seed: 9, Seeded: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range universe {
		if universe[i] != original[i] {
			t.Fatalf("universe modified at index %d", i)
		}
	}
}
