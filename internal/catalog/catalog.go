// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package catalog holds the static movie catalog and the precomputed
// item-to-item similarity matrix.
//
// Both artifacts are produced offline and loaded once at startup. The
// catalog's insertion order is the identity of every item: matrix row i
// and catalog index i must always refer to the same movie, so the two
// artifacts are loaded and validated together and never reloaded
// independently. After Load the Store is immutable and safe for
// unlimited concurrent readers.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// ErrInvalidIndex indicates a catalog index outside [0, Len).
// Hitting it at request time means the store and the ranker disagree
// about the catalog ordering, which is a server-side defect.
var ErrInvalidIndex = errors.New("catalog: index out of range")

// Item is a single recommendable movie.
type Item struct {
	// ID is the external (TMDB) identifier used for metadata lookups.
	ID int `json:"id"`

	// Title is the display title.
	Title string `json:"title"`
}

// MatchResult is the outcome of resolving a free-text query.
type MatchResult struct {
	// Found reports whether any catalog title matched.
	Found bool

	// Index is the catalog index of the first match. Only meaningful
	// when Found is true.
	Index int
}

// Store is the immutable in-memory catalog plus similarity matrix.
type Store struct {
	items []Item

	// normTitles holds trimmed, lowercased titles, precomputed at load
	// so Match and Suggest never re-normalize per request.
	normTitles []string

	matrix [][]float64
}

// Load reads the catalog and similarity matrix artifacts and validates
// that their dimensions agree. Any error here is fatal to startup: the
// service cannot produce recommendations from inconsistent artifacts.
func Load(catalogPath, matrixPath string) (*Store, error) {
	items, err := loadItems(catalogPath)
	if err != nil {
		return nil, err
	}

	matrix, err := loadMatrix(matrixPath)
	if err != nil {
		return nil, err
	}

	if err := validateDimensions(items, matrix); err != nil {
		return nil, err
	}

	return New(items, matrix)
}

// New builds a Store from already-parsed artifacts. Exposed so tests can
// construct small synthetic catalogs without touching the filesystem.
func New(items []Item, matrix [][]float64) (*Store, error) {
	if err := validateDimensions(items, matrix); err != nil {
		return nil, err
	}

	normTitles := make([]string, len(items))
	for i, item := range items {
		normTitles[i] = normalize(item.Title)
	}

	return &Store{
		items:      items,
		normTitles: normTitles,
		matrix:     matrix,
	}, nil
}

func loadItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	return items, nil
}

func loadMatrix(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read similarity matrix %s: %w", path, err)
	}

	var matrix [][]float64
	if err := json.Unmarshal(data, &matrix); err != nil {
		return nil, fmt.Errorf("parse similarity matrix %s: %w", path, err)
	}
	return matrix, nil
}

func validateDimensions(items []Item, matrix [][]float64) error {
	n := len(items)
	if n == 0 {
		return errors.New("catalog is empty")
	}
	if len(matrix) != n {
		return fmt.Errorf("similarity matrix has %d rows for %d catalog items", len(matrix), n)
	}
	for i, row := range matrix {
		if len(row) != n {
			return fmt.Errorf("similarity matrix row %d has %d columns, expected %d", i, len(row), n)
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Len returns the number of catalog items.
func (s *Store) Len() int {
	return len(s.items)
}

// Item returns the catalog item at index i.
func (s *Store) Item(i int) (Item, error) {
	if i < 0 || i >= len(s.items) {
		return Item{}, fmt.Errorf("%w: %d (catalog size %d)", ErrInvalidIndex, i, len(s.items))
	}
	return s.items[i], nil
}

// Row returns the similarity row for catalog index i. The returned slice
// is the store's own backing array; callers must not modify it.
func (s *Store) Row(i int) ([]float64, error) {
	if i < 0 || i >= len(s.matrix) {
		return nil, fmt.Errorf("%w: %d (catalog size %d)", ErrInvalidIndex, i, len(s.matrix))
	}
	return s.matrix[i], nil
}
