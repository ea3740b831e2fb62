package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studydeckapp/studydeck-server/internal/domain"
	"github.com/studydeckapp/studydeck-server/internal/search"
)

// SearchService fronts the full-text card index. It implements
// store.CardIndexer so the store can push mutations into the index, and
// serves queries for the search endpoint.
type SearchService struct {
	index  *search.CardIndex
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.CardIndex, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		logger: logger,
	}
}

// IndexCard adds or updates a card in the index.
func (s *SearchService) IndexCard(_ context.Context, card *domain.Flashcard) error {
	return s.index.IndexCard(search.CardToDocument(card))
}

// DeleteCard removes a card from the index.
func (s *SearchService) DeleteCard(_ context.Context, cardID string) error {
	return s.index.DeleteCard(cardID)
}

// DocumentCount returns the number of indexed cards.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Search runs a full-text query over the indexed cards.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if params.Limit <= 0 {
		params.Limit = search.DefaultParams().Limit
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		s.logger.Error("card search failed", "query", params.Query, "error", err)
		return nil, fmt.Errorf("search cards: %w", err)
	}
	return result, nil
}

// ReindexAll rebuilds the index from the given cards. Used on startup
// to reconcile the index with the store.
func (s *SearchService) ReindexAll(cards []*domain.Flashcard) error {
	docs := make([]*search.CardDocument, len(cards))
	for i, card := range cards {
		docs[i] = search.CardToDocument(card)
	}
	if err := s.index.IndexCards(docs); err != nil {
		return fmt.Errorf("reindex cards: %w", err)
	}
	s.logger.Info("search index reconciled", "cards", len(cards))
	return nil
}
