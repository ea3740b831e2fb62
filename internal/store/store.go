// Package store persists StudyDeck records as JSON documents in an embedded
// Badger database. It is the only component that touches disk; everything
// above it works against in-memory domain types.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/studydeckapp/studydeck-server/internal/domain"
)

// CardIndexer is the interface for keeping the full-text search index in sync
// with card mutations. Index updates run asynchronously and best-effort so
// store operations never block on the index.
type CardIndexer interface {
	IndexCard(ctx context.Context, card *domain.Flashcard) error
	DeleteCard(ctx context.Context, cardID string) error
}

// NoopIndexer is a no-op CardIndexer for tests and index-less deployments.
type NoopIndexer struct{}

// IndexCard is a no-op.
func (NoopIndexer) IndexCard(context.Context, *domain.Flashcard) error { return nil }

// DeleteCard is a no-op.
func (NoopIndexer) DeleteCard(context.Context, string) error { return nil }

// NewNoopIndexer creates a no-op card indexer.
func NewNoopIndexer() CardIndexer {
	return NoopIndexer{}
}

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Search indexer, set via SetCardIndexer after construction to avoid a
	// circular dependency between store and search.
	indexer CardIndexer

	// Cards provides generic document CRUD; card-specific operations
	// (ordered listing, timestamp handling) live in cards.go.
	Cards *Entity[domain.Flashcard]
}

// New creates a Store backed by a Badger database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{
		db:      db,
		logger:  logger,
		indexer: NoopIndexer{},
	}
	s.Cards = NewEntity[domain.Flashcard](s, cardPrefix)

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return s, nil
}

// SetCardIndexer wires the search indexer into the store. Safe to call once
// during startup, before the store serves requests.
func (s *Store) SetCardIndexer(indexer CardIndexer) {
	if indexer == nil {
		indexer = NoopIndexer{}
	}
	s.indexer = indexer
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
