// Reelpick - Movie Recommendation Service
// Copyright 2026 Reelpick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelpick/reelpick

// Package history persists search history in BadgerDB. Records are
// append-only; the store never updates or deletes them. Keys embed an
// inverted timestamp so a forward prefix scan yields newest-first
// order without sorting.
package history

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Key prefix for BadgerDB storage
const historyKeyPrefix = "history:"

// Record is one completed search. Written only after a recommendation
// response has been fully assembled.
type Record struct {
	UserID       string    `json:"user_id"`
	Query        string    `json:"query"`
	ResultsCount int       `json:"results_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// Stats summarizes a user's search activity.
type Stats struct {
	TotalSearches   int `json:"total_searches"`
	DistinctQueries int `json:"distinct_queries"`
}

// Store is a BadgerDB-backed history sink. Badger serializes writes
// internally; the store is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a BadgerDB at path and wraps it in a Store.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for history: %w", err)
	}
	return NewFromDB(db), nil
}

// NewFromDB wraps an already-open BadgerDB. Used by tests with
// in-memory databases.
func NewFromDB(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// recordKey builds "history:<user>:<inverted-nanos>:<nonce>". The user
// segment is query-escaped so an ID containing ':' cannot alias another
// user's prefix. The inverted timestamp makes lexicographic order equal
// reverse chronological order; the nonce disambiguates same-nanosecond
// writes.
func recordKey(userID string, ts time.Time) []byte {
	inverted := uint64(math.MaxInt64 - ts.UnixNano())
	nonce := uuid.New().String()[:8]
	return []byte(fmt.Sprintf("%s%s:%020d:%s", historyKeyPrefix, url.QueryEscape(userID), inverted, nonce))
}

func userPrefix(userID string) []byte {
	return []byte(historyKeyPrefix + url.QueryEscape(userID) + ":")
}

// Add appends one search record.
func (s *Store) Add(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal history record: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(recordKey(rec.UserID, rec.Timestamp), data); err != nil {
			return fmt.Errorf("set history record: %w", err)
		}
		return nil
	})
}

// RecentForUser returns up to limit records for a user, newest first.
func (s *Store) RecentForUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []Record{}, nil
	}

	records := make([]Record, 0, limit)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := userPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(records) < limit; it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal history record: %w", err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user history: %w", err)
	}

	return records, nil
}

// StatsForUser counts a user's total searches and distinct queries.
func (s *Store) StatsForUser(ctx context.Context, userID string) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	var stats Stats
	distinct := make(map[string]struct{})

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := userPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal history record: %w", err)
			}
			stats.TotalSearches++
			distinct[rec.Query] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("scan user history: %w", err)
	}

	stats.DistinctQueries = len(distinct)
	return stats, nil
}
