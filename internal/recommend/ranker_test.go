// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package recommend

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/reelpick/reelpick/internal/catalog"
)

// newStoreWithRow builds an n-item catalog whose similarity matrix is
// the identity matrix except that row `rowIndex` is replaced by row.
func newStoreWithRow(t *testing.T, n, rowIndex int, row []float64) *catalog.Store {
	t.Helper()

	items := make([]catalog.Item, n)
	matrix := make([][]float64, n)
	for i := range items {
		items[i] = catalog.Item{ID: i + 1, Title: fmt.Sprintf("Movie %d", i)}
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}
	copy(matrix[rowIndex], row)

	store, err := catalog.New(items, matrix)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return store
}

func TestRankOrdersByDescendingScore(t *testing.T) {
	t.Parallel()

	store := newStoreWithRow(t, 3, 0, []float64{1.0, 0.8, 0.3})

	ranked, err := Rank(store, 0, 2)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	want := []RankedNeighbor{
		{Index: 1, Score: 0.8},
		{Index: 2, Score: 0.3},
	}
	if !reflect.DeepEqual(ranked, want) {
		t.Errorf("Rank() = %v, want %v", ranked, want)
	}
}

func TestRankExcludesSelf(t *testing.T) {
	t.Parallel()

	// Self-similarity 1.0 is the highest score in the row; it must
	// still never appear in the output.
	store := newStoreWithRow(t, 3, 0, []float64{1.0, 0.8, 0.3})

	ranked, err := Rank(store, 0, 10)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	for _, n := range ranked {
		if n.Index == 0 {
			t.Errorf("Rank() included the query item itself: %v", ranked)
		}
	}
}

func TestRankTiesResolveByAscendingIndex(t *testing.T) {
	t.Parallel()

	row := []float64{1.0, 0.9, 0.2, 0.1, 0.5, 0.4, 0.3, 0.5}
	store := newStoreWithRow(t, 8, 0, row)

	ranked, err := Rank(store, 0, 7)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	pos := make(map[int]int, len(ranked))
	for p, n := range ranked {
		pos[n.Index] = p
	}
	// Indices 4 and 7 tie at 0.5; the smaller index wins.
	if pos[4] > pos[7] {
		t.Errorf("tie at 0.5: index 4 at position %d, index 7 at position %d, want 4 first", pos[4], pos[7])
	}
}

func TestRankIdempotent(t *testing.T) {
	t.Parallel()

	store := newStoreWithRow(t, 8, 0, []float64{1.0, 0.9, 0.2, 0.1, 0.5, 0.4, 0.3, 0.5})

	first, err := Rank(store, 0, 5)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	second, err := Rank(store, 0, 5)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Rank() not idempotent: %v then %v", first, second)
	}
}

func TestRankCapsAtTopN(t *testing.T) {
	t.Parallel()

	store := newStoreWithRow(t, 8, 0, []float64{1.0, 0.9, 0.2, 0.1, 0.5, 0.4, 0.3, 0.5})

	ranked, err := Rank(store, 0, 3)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(ranked) != 3 {
		t.Errorf("len(ranked) = %d, want 3", len(ranked))
	}
}

func TestRankTopNLargerThanCatalog(t *testing.T) {
	t.Parallel()

	store := newStoreWithRow(t, 3, 0, []float64{1.0, 0.8, 0.3})

	ranked, err := Rank(store, 0, 50)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(ranked) != 2 {
		t.Errorf("len(ranked) = %d, want 2 (catalog minus self)", len(ranked))
	}
}

func TestRankInvalidIndex(t *testing.T) {
	t.Parallel()

	store := newStoreWithRow(t, 3, 0, []float64{1.0, 0.8, 0.3})

	for _, index := range []int{-1, 3, 100} {
		if _, err := Rank(store, index, 5); !errors.Is(err, catalog.ErrInvalidIndex) {
			t.Errorf("Rank(index=%d) error = %v, want ErrInvalidIndex", index, err)
		}
	}
}
