package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydeckapp/studydeck-server/internal/domain"
	domainerrors "github.com/studydeckapp/studydeck-server/internal/errors"
	"github.com/studydeckapp/studydeck-server/internal/store"
)

func setupCardService(t *testing.T) *CardService {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	svc := NewCardService(st, logger)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestCardService_CreateAndList(t *testing.T) {
	svc := setupCardService(t)
	ctx := context.Background()

	card, err := svc.CreateCard(ctx, CreateCardRequest{
		Question: "Unit of electric current?",
		Answer:   "Ampere",
		Subject:  "General Science",
		Tags:     []string{"physics", "Physics", " units "},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, domain.DifficultyEasy, card.Difficulty)
	assert.Equal(t, []string{"physics", "units"}, card.Tags)

	cards := svc.List()
	require.Len(t, cards, 1)
	assert.Equal(t, card.ID, cards[0].ID)
}

func TestCardService_CreateValidation(t *testing.T) {
	svc := setupCardService(t)
	ctx := context.Background()

	_, err := svc.CreateCard(ctx, CreateCardRequest{
		Question: "",
		Answer:   "Ampere",
		Subject:  "General Science",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = svc.CreateCard(ctx, CreateCardRequest{
		Question: "q",
		Answer:   "a",
		Subject:  "Astrology",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	// Nothing persisted.
	assert.Equal(t, 0, svc.Count())
}

func TestCardService_SubjectCanonicalized(t *testing.T) {
	svc := setupCardService(t)

	card, err := svc.CreateCard(context.Background(), CreateCardRequest{
		Question: "Capital of France?",
		Answer:   "Paris",
		Subject:  "general-knowledge",
	})
	require.NoError(t, err)
	assert.Equal(t, "General Knowledge", card.Subject)
}

func TestCardService_EditLifecycle(t *testing.T) {
	svc := setupCardService(t)
	ctx := context.Background()

	created, err := svc.CreateCard(ctx, CreateCardRequest{
		Question:   "Q1",
		Answer:     "A1",
		Subject:    "History",
		Tags:       []string{"x"},
		Difficulty: "easy",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateCard(ctx, created.ID, UpdateCardRequest{
		Question:   "Q1",
		Answer:     "A1",
		Subject:    "History",
		Tags:       []string{"x"},
		Difficulty: "hard",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, domain.DifficultyHard, updated.Difficulty)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	cards := svc.List()
	require.Len(t, cards, 1)
	assert.Equal(t, domain.DifficultyHard, cards[0].Difficulty)

	require.NoError(t, svc.DeleteCard(ctx, created.ID))
	assert.Empty(t, svc.List())
}

func TestCardService_UpdateNotFound(t *testing.T) {
	svc := setupCardService(t)

	_, err := svc.UpdateCard(context.Background(), "card-missing", UpdateCardRequest{
		Question:   "q",
		Answer:     "a",
		Subject:    "History",
		Difficulty: "easy",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestCardService_DeleteMissingIsNoError(t *testing.T) {
	svc := setupCardService(t)
	assert.NoError(t, svc.DeleteCard(context.Background(), "card-missing"))
}

func TestCardService_FilteredAndSubjects(t *testing.T) {
	svc := setupCardService(t)
	ctx := context.Background()

	seed := []CreateCardRequest{
		{Question: "Unit of electric current?", Answer: "Ampere", Subject: "General Science"},
		{Question: "First Battle of Panipat year?", Answer: "1526", Subject: "History", Tags: []string{"mughal"}},
		{Question: "Capital of France?", Answer: "Paris", Subject: "General Knowledge"},
	}
	for _, req := range seed {
		_, err := svc.CreateCard(ctx, req)
		require.NoError(t, err)
	}

	// Case-insensitive query over answers.
	got := svc.Filtered(nil, "ampere")
	require.Len(t, got, 1)
	assert.Equal(t, "General Science", got[0].Subject)

	// Subject selection accepts slugs.
	got = svc.Filtered([]string{"history"}, "")
	require.Len(t, got, 1)
	assert.Equal(t, "History", got[0].Subject)

	// Unknown subject values are dropped from the selection.
	got = svc.Filtered([]string{"Astrology"}, "")
	assert.Len(t, got, 3)

	subjects := svc.Subjects()
	assert.Len(t, subjects, 3)
}

func TestCardService_ReloadReflectsStore(t *testing.T) {
	svc := setupCardService(t)
	ctx := context.Background()

	_, err := svc.CreateCard(ctx, CreateCardRequest{
		Question: "q", Answer: "a", Subject: "History",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Reload(ctx))
	assert.Equal(t, 1, svc.Count())
}

func TestCardService_StaleApplyDiscarded(t *testing.T) {
	svc := setupCardService(t)
	ctx := context.Background()

	gen := svc.currentGeneration()
	require.NoError(t, svc.Reload(ctx))

	// An apply captured before the reload must be refused.
	assert.False(t, svc.apply(gen, func() {
		t.Fatal("stale edit must not run")
	}))

	// A fresh capture goes through.
	assert.True(t, svc.apply(svc.currentGeneration(), func() {}))
}
