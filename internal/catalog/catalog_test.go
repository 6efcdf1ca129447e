// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testItems() []Item {
	return []Item{
		{ID: 1, Title: "Inception"},
		{ID: 2, Title: "Interstellar"},
		{ID: 3, Title: "Tenet"},
	}
}

func testMatrix() [][]float64 {
	return [][]float64{
		{1.0, 0.8, 0.3},
		{0.8, 1.0, 0.5},
		{0.3, 0.5, 1.0},
	}
}

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

func TestLoadValidArtifacts(t *testing.T) {
	t.Parallel()

	catalogPath := writeArtifact(t, "catalog.json",
		`[{"id":1,"title":"Inception"},{"id":2,"title":"Interstellar"}]`)
	matrixPath := writeArtifact(t, "similarity.json",
		`[[1.0,0.8],[0.8,1.0]]`)

	store, err := Load(catalogPath, matrixPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 items, got %d", store.Len())
	}

	item, err := store.Item(0)
	if err != nil {
		t.Fatalf("Item(0): %v", err)
	}
	if item.Title != "Inception" || item.ID != 1 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestLoadMissingArtifacts(t *testing.T) {
	t.Parallel()

	catalogPath := writeArtifact(t, "catalog.json", `[{"id":1,"title":"Inception"}]`)

	if _, err := Load("/nonexistent/catalog.json", "/nonexistent/matrix.json"); err == nil {
		t.Error("expected error for missing catalog")
	}
	if _, err := Load(catalogPath, "/nonexistent/matrix.json"); err == nil {
		t.Error("expected error for missing matrix")
	}
}

func TestLoadMalformedArtifacts(t *testing.T) {
	t.Parallel()

	goodCatalog := writeArtifact(t, "catalog.json", `[{"id":1,"title":"Inception"}]`)
	badCatalog := writeArtifact(t, "bad_catalog.json", `{"not":"a list"`)
	badMatrix := writeArtifact(t, "bad_matrix.json", `[[1.0,`)

	if _, err := Load(badCatalog, badMatrix); err == nil {
		t.Error("expected error for malformed catalog")
	}
	if _, err := Load(goodCatalog, badMatrix); err == nil {
		t.Error("expected error for malformed matrix")
	}
}

func TestLoadDimensionMismatch(t *testing.T) {
	t.Parallel()

	catalogPath := writeArtifact(t, "catalog.json",
		`[{"id":1,"title":"Inception"},{"id":2,"title":"Interstellar"}]`)

	tests := []struct {
		name   string
		matrix string
	}{
		{"too few rows", `[[1.0,0.8]]`},
		{"too many rows", `[[1.0,0.8],[0.8,1.0],[0.1,0.2]]`},
		{"ragged row", `[[1.0,0.8],[0.8]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			matrixPath := writeArtifact(t, "similarity.json", tt.matrix)
			if _, err := Load(catalogPath, matrixPath); err == nil {
				t.Error("expected dimension mismatch error")
			}
		})
	}
}

func TestNewRejectsEmptyCatalog(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, nil); err == nil {
		t.Error("expected error for empty catalog")
	}
}

func TestRowAndItemBounds(t *testing.T) {
	t.Parallel()

	store, err := New(testItems(), testMatrix())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	row, err := store.Row(1)
	if err != nil {
		t.Fatalf("Row(1): %v", err)
	}
	if row[0] != 0.8 {
		t.Errorf("expected row[0] 0.8, got %v", row[0])
	}

	for _, i := range []int{-1, 3, 100} {
		if _, err := store.Row(i); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("Row(%d): expected ErrInvalidIndex, got %v", i, err)
		}
		if _, err := store.Item(i); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("Item(%d): expected ErrInvalidIndex, got %v", i, err)
		}
	}
}
