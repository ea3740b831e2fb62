package store_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydeckapp/studydeck-server/internal/domain"
)

func newTestCard(question, subject string) *domain.Flashcard {
	return &domain.Flashcard{
		Question:   question,
		Answer:     "answer for " + question,
		Subject:    subject,
		Tags:       []string{"test"},
		Difficulty: domain.DifficultyEasy,
	}
}

func TestCreateCard_AssignsIDAndTimestamps(t *testing.T) {
	s := setupTestStore(t)

	card := newTestCard("Q1", "History")
	require.NoError(t, s.CreateCard(context.Background(), card))

	assert.True(t, strings.HasPrefix(card.ID, "card-"), "store assigns a prefixed id, got %q", card.ID)
	assert.False(t, card.CreatedAt.IsZero())
	assert.False(t, card.UpdatedAt.IsZero())
}

func TestCardLifecycle(t *testing.T) {
	// Create -> list -> edit -> list -> delete -> list.
	s := setupTestStore(t)
	ctx := context.Background()

	card := &domain.Flashcard{
		Question:   "Q1",
		Answer:     "A1",
		Subject:    "History",
		Tags:       []string{"x"},
		Difficulty: domain.DifficultyEasy,
	}
	require.NoError(t, s.CreateCard(ctx, card))

	cards, err := s.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)
	assert.Equal(t, "Q1", cards[0].Question)

	// Edit difficulty; id and createdAt must survive.
	edited := *cards[0]
	edited.Difficulty = domain.DifficultyHard
	require.NoError(t, s.UpdateCard(ctx, &edited))

	cards, err = s.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)
	assert.Equal(t, domain.DifficultyHard, cards[0].Difficulty)
	assert.Equal(t, card.CreatedAt.UTC(), cards[0].CreatedAt.UTC())

	require.NoError(t, s.DeleteCard(ctx, card.ID))

	cards, err = s.ListCards(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestListCards_NewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, q := range []string{"first", "second", "third"} {
		card := newTestCard(q, "Polity")
		require.NoError(t, s.CreateCard(ctx, card))
		ids = append(ids, card.ID)
		time.Sleep(2 * time.Millisecond)
	}

	cards, err := s.ListCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, ids[2], cards[0].ID)
	assert.Equal(t, ids[1], cards[1].ID)
	assert.Equal(t, ids[0], cards[2].ID)
}

func TestUpdateCard_TouchesUpdatedAt(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	card := newTestCard("Q", "Economy")
	require.NoError(t, s.CreateCard(ctx, card))

	time.Sleep(2 * time.Millisecond)

	edited := *card
	edited.Answer = "revised"
	require.NoError(t, s.UpdateCard(ctx, &edited))

	stored, err := s.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised", stored.Answer)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}

func TestUpdateCard_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.UpdateCard(context.Background(), &domain.Flashcard{ID: "card-missing"})
	require.Error(t, err)
}

func TestDeleteCard_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	card := newTestCard("Q", "English")
	require.NoError(t, s.CreateCard(ctx, card))

	require.NoError(t, s.DeleteCard(ctx, card.ID))
	require.NoError(t, s.DeleteCard(ctx, card.ID))
	require.NoError(t, s.DeleteCard(ctx, "card-never-existed"))
}
