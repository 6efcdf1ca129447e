// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package recommend

import (
	"sort"

	"github.com/reelpick/reelpick/internal/catalog"
)

// Rank returns up to topN neighbors of the item at index, ordered by
// descending similarity score. Equal scores resolve by ascending
// catalog index (stable sort over the naturally index-ordered row).
// The query item itself is excluded by index, never by rank position.
//
// Rank reads the matrix row through the store and never mutates it;
// calling it twice with the same arguments yields identical output.
// An out-of-range index returns catalog.ErrInvalidIndex.
func Rank(store *catalog.Store, index, topN int) ([]RankedNeighbor, error) {
	row, err := store.Row(index)
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		return []RankedNeighbor{}, nil
	}

	neighbors := make([]RankedNeighbor, 0, len(row))
	for i, score := range row {
		if i == index {
			continue
		}
		neighbors = append(neighbors, RankedNeighbor{Index: i, Score: score})
	}

	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].Score > neighbors[b].Score
	})

	if topN < len(neighbors) {
		neighbors = neighbors[:topN]
	}
	return neighbors, nil
}
