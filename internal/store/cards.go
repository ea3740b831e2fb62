package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/studydeckapp/studydeck-server/internal/domain"
	"github.com/studydeckapp/studydeck-server/internal/id"
)

// Key layout for cards. Documents live under cardPrefix; a created_at index
// maps sortable timestamps to card IDs so listing newest-first is a single
// reverse scan.
const (
	cardPrefix           = "card:"
	cardCreatedIdxPrefix = "card:idx:created_at:"
)

// formatSortableTime renders a timestamp with fixed-width, zero-padded
// nanoseconds so lexicographic key order matches chronological order.
func formatSortableTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05") + fmt.Sprintf(".%09d", t.Nanosecond()) + "Z"
}

// cardCreatedKey builds the created_at index key for a card.
func cardCreatedKey(createdAt time.Time, cardID string) []byte {
	return fmt.Appendf(nil, "%s%s:%s", cardCreatedIdxPrefix, formatSortableTime(createdAt), cardID)
}

// CreateCard persists a new card. The store assigns the ID and both
// timestamps; any caller-supplied values for them are overwritten.
func (s *Store) CreateCard(ctx context.Context, card *domain.Flashcard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cardID, err := id.Generate("card")
	if err != nil {
		return err
	}
	card.ID = cardID
	card.InitTimestamps()

	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	key := []byte(cardPrefix + card.ID)
	idxKey := cardCreatedKey(card.CreatedAt, card.ID)

	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists.WithMessage("card already exists")
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing card: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("failed to set card: %w", err)
		}
		if err := txn.Set(idxKey, []byte(card.ID)); err != nil {
			return fmt.Errorf("failed to set created_at index: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyIndexCard(card)
	return nil
}

// GetCard retrieves a card by ID.
func (s *Store) GetCard(ctx context.Context, cardID string) (*domain.Flashcard, error) {
	card, err := s.Cards.Get(ctx, cardID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound.WithMessage("card not found")
	}
	return card, err
}

// ListCards returns all cards ordered by creation time, newest first.
func (s *Store) ListCards(ctx context.Context) ([]*domain.Flashcard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cards []*domain.Flashcard

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(cardCreatedIdxPrefix)
		// Reverse iteration starts just past the last key in the prefix range.
		seek := append(append([]byte{}, prefix...), 0xff)

		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var cardID string
			if err := it.Item().Value(func(val []byte) error {
				cardID = string(val)
				return nil
			}); err != nil {
				return err
			}

			item, err := txn.Get([]byte(cardPrefix + cardID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				// Dangling index entry; skip rather than fail the listing.
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to get card %s: %w", cardID, err)
			}

			var card domain.Flashcard
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &card)
			}); err != nil {
				return fmt.Errorf("failed to unmarshal card %s: %w", cardID, err)
			}
			cards = append(cards, &card)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cards, nil
}

// UpdateCard replaces a card's mutable fields. ID and CreatedAt are preserved
// from the stored record; UpdatedAt is touched. Returns ErrNotFound if the
// card does not exist.
func (s *Store) UpdateCard(ctx context.Context, card *domain.Flashcard) error {
	existing, err := s.GetCard(ctx, card.ID)
	if err != nil {
		return err
	}

	card.CreatedAt = existing.CreatedAt
	card.Touch()

	if err := s.Cards.Update(ctx, card.ID, card); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound.WithMessage("card not found")
		}
		return err
	}

	s.notifyIndexCard(card)
	return nil
}

// DeleteCard removes a card and its index entry. Idempotent: deleting a
// missing card is not an error.
func (s *Store) DeleteCard(ctx context.Context, cardID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(cardPrefix + cardID)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get card: %w", err)
		}

		var card domain.Flashcard
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &card)
		}); err != nil {
			return fmt.Errorf("failed to unmarshal card: %w", err)
		}

		if err := txn.Delete(cardCreatedKey(card.CreatedAt, card.ID)); err != nil {
			return fmt.Errorf("failed to delete created_at index: %w", err)
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyDeleteCard(cardID)
	return nil
}

// notifyIndexCard updates the search index in the background, best effort.
func (s *Store) notifyIndexCard(card *domain.Flashcard) {
	c := *card
	go func() {
		if err := s.indexer.IndexCard(context.Background(), &c); err != nil && s.logger != nil {
			s.logger.Warn("failed to index card", "card_id", c.ID, "error", err)
		}
	}()
}

// notifyDeleteCard removes a card from the search index in the background.
func (s *Store) notifyDeleteCard(cardID string) {
	go func() {
		if err := s.indexer.DeleteCard(context.Background(), cardID); err != nil && s.logger != nil {
			s.logger.Warn("failed to remove card from index", "card_id", cardID, "error", err)
		}
	}()
}
