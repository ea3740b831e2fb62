// Package service provides the business logic layer: the card collection
// container, study session registry, progress aggregation, and search.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/studydeckapp/studydeck-server/internal/domain"
	domainerrors "github.com/studydeckapp/studydeck-server/internal/errors"
	"github.com/studydeckapp/studydeck-server/internal/store"
	"github.com/studydeckapp/studydeck-server/internal/validation"
)

// CardService owns the authoritative in-memory card collection. It is a
// single-writer state container: the snapshot is loaded from the store,
// every mutation flows through Create/Update/Delete/Reload, and nothing
// else touches the slice.
//
// Each Reload bumps a generation counter. A mutation captures the
// generation before its store call and only applies its local snapshot
// edit if the generation is unchanged when the call completes; a stale
// completion is discarded and the snapshot is re-read from the store.
type CardService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator

	mu         sync.RWMutex
	cards      []*domain.Flashcard // newest first, matching store order
	generation uint64
}

// NewCardService creates a new card service. Call Load before serving.
func NewCardService(store *store.Store, logger *slog.Logger) *CardService {
	return &CardService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

// Load replaces the snapshot with the store's current contents and
// bumps the generation, invalidating any in-flight mutation applies.
func (s *CardService) Load(ctx context.Context) error {
	cards, err := s.store.ListCards(ctx)
	if err != nil {
		s.logger.Error("failed to load card collection", "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "could not load cards")
	}

	s.mu.Lock()
	s.cards = cards
	s.generation++
	s.mu.Unlock()

	s.logger.Info("card collection loaded", "count", len(cards))
	return nil
}

// Reload is Load under its user-facing name.
func (s *CardService) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// List returns the current collection, newest first.
func (s *CardService) List() []*domain.Flashcard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Flashcard, len(s.cards))
	copy(out, s.cards)
	return out
}

// Count returns the collection size.
func (s *CardService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

// Subjects returns the distinct subjects present in the collection, in
// first-seen order.
func (s *CardService) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.DistinctSubjects(s.cards)
}

// Filtered recomputes the display list from the snapshot: conjunctive
// subject selection and case-insensitive text query. Unknown subject
// values are dropped from the selection rather than matching nothing.
func (s *CardService) Filtered(subjects []string, query string) []*domain.Flashcard {
	canonical := make([]string, 0, len(subjects))
	for _, subject := range subjects {
		if c := domain.CanonicalSubject(subject); c != "" {
			canonical = append(canonical, c)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.FilterCards(s.cards, canonical, query)
}

// CreateCardRequest contains fields for creating a card.
type CreateCardRequest struct {
	Question   string   `json:"question" validate:"required,max=2000"`
	Answer     string   `json:"answer" validate:"required,max=2000"`
	Subject    string   `json:"subject" validate:"required,subject"`
	Tags       []string `json:"tags"`
	Difficulty string   `json:"difficulty" validate:"omitempty,difficulty"`
}

// CreateCard validates and persists a new card, then prepends it to the
// snapshot (it is the newest card). On store failure the snapshot is
// left untouched.
func (s *CardService) CreateCard(ctx context.Context, req CreateCardRequest) (*domain.Flashcard, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	difficulty := domain.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = domain.DifficultyEasy
	}

	card := &domain.Flashcard{
		Question:   req.Question,
		Answer:     req.Answer,
		Subject:    domain.CanonicalSubject(req.Subject),
		Tags:       domain.NormalizeTags(req.Tags),
		Difficulty: difficulty,
	}

	gen := s.currentGeneration()

	if err := s.store.CreateCard(ctx, card); err != nil {
		s.logger.Error("failed to create card", "error", err)
		return nil, fmt.Errorf("create card: %w", err)
	}

	if !s.apply(gen, func() {
		s.cards = append([]*domain.Flashcard{card}, s.cards...)
	}) {
		s.resync(ctx)
	}

	s.logger.Info("card created", "card_id", card.ID, "subject", card.Subject)
	return card, nil
}

// UpdateCardRequest contains the replacement values for a card's
// mutable fields.
type UpdateCardRequest struct {
	Question   string   `json:"question" validate:"required,max=2000"`
	Answer     string   `json:"answer" validate:"required,max=2000"`
	Subject    string   `json:"subject" validate:"required,subject"`
	Tags       []string `json:"tags"`
	Difficulty string   `json:"difficulty" validate:"required,difficulty"`
}

// UpdateCard validates and persists an edit. ID and CreatedAt are
// preserved by the store; the snapshot entry is replaced in place.
func (s *CardService) UpdateCard(ctx context.Context, cardID string, req UpdateCardRequest) (*domain.Flashcard, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	card := &domain.Flashcard{
		ID:         cardID,
		Question:   req.Question,
		Answer:     req.Answer,
		Subject:    domain.CanonicalSubject(req.Subject),
		Tags:       domain.NormalizeTags(req.Tags),
		Difficulty: domain.Difficulty(req.Difficulty),
	}

	gen := s.currentGeneration()

	if err := s.store.UpdateCard(ctx, card); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("card %s not found", cardID)
		}
		s.logger.Error("failed to update card", "card_id", cardID, "error", err)
		return nil, fmt.Errorf("update card: %w", err)
	}

	if !s.apply(gen, func() {
		for i, c := range s.cards {
			if c.ID == cardID {
				s.cards[i] = card
				break
			}
		}
	}) {
		s.resync(ctx)
	}

	s.logger.Info("card updated", "card_id", cardID)
	return card, nil
}

// DeleteCard removes a card from the store and the snapshot. Deleting a
// missing card succeeds; the result is the same.
func (s *CardService) DeleteCard(ctx context.Context, cardID string) error {
	gen := s.currentGeneration()

	if err := s.store.DeleteCard(ctx, cardID); err != nil {
		s.logger.Error("failed to delete card", "card_id", cardID, "error", err)
		return fmt.Errorf("delete card: %w", err)
	}

	if !s.apply(gen, func() {
		for i, c := range s.cards {
			if c.ID == cardID {
				s.cards = append(s.cards[:i], s.cards[i+1:]...)
				break
			}
		}
	}) {
		s.resync(ctx)
	}

	s.logger.Info("card deleted", "card_id", cardID)
	return nil
}

func (s *CardService) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// apply runs the snapshot edit only if no Reload happened since gen was
// captured. Returns false when the completion is stale.
func (s *CardService) apply(gen uint64, edit func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	edit()
	return true
}

// resync re-reads the snapshot after a discarded stale apply so the
// mutation that just hit the store is still reflected.
func (s *CardService) resync(ctx context.Context) {
	s.logger.Debug("snapshot superseded during mutation, reloading")
	if err := s.Load(ctx); err != nil {
		s.logger.Warn("failed to resync card collection", "error", err)
	}
}
