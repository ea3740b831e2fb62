package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydeckapp/studydeck-server/internal/domain"
)

func setupTestIndex(t *testing.T) *CardIndex {
	t.Helper()

	index, err := NewCardIndex(Options{
		DataPath: t.TempDir(),
		Logger:   nil,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = index.Close()
	})

	return index
}

func testDocs() []*CardDocument {
	return []*CardDocument{
		{ID: "card-1", Question: "Unit of electric current?", Answer: "Ampere", Subject: "General Science", Difficulty: "easy", Tags: []string{"physics"}},
		{ID: "card-2", Question: "Who chaired the constitution drafting committee?", Answer: "B.R. Ambedkar", Subject: "Polity", Difficulty: "medium"},
		{ID: "card-3", Question: "First Battle of Panipat year?", Answer: "1526", Subject: "History", Difficulty: "hard", Tags: []string{"mughal"}},
	}
}

func TestNewCardIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestCardIndex_IndexCard(t *testing.T) {
	index := setupTestIndex(t)

	err := index.IndexCard(testDocs()[0])
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestCardIndex_IndexCards_Batch(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexCards(testDocs()))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestCardIndex_DeleteCard(t *testing.T) {
	index := setupTestIndex(t)

	require.NoError(t, index.IndexCard(testDocs()[0]))
	require.NoError(t, index.DeleteCard("card-1"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestCardIndex_Search_Basic(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.IndexCards(testDocs()))

	params := DefaultParams()
	params.Query = "ampere"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "card-1", result.Hits[0].ID)
	assert.Equal(t, "General Science", result.Hits[0].Subject)
}

func TestCardIndex_Search_SubjectFilter(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.IndexCards(testDocs()))

	params := DefaultParams()
	params.Subjects = []string{"Polity"}

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "card-2", result.Hits[0].ID)
}

func TestCardIndex_Search_DifficultyFilter(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.IndexCards(testDocs()))

	params := DefaultParams()
	params.Difficulty = "hard"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "card-3", result.Hits[0].ID)
}

func TestCardIndex_Search_TagMatch(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.IndexCards(testDocs()))

	params := DefaultParams()
	params.Query = "mughal"

	result, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "card-3", result.Hits[0].ID)
}

func TestCardIndex_Search_MatchAll(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.IndexCards(testDocs()))

	result, err := index.Search(context.Background(), DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), result.Total)
}

func TestCardIndex_Rebuild(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.IndexCards(testDocs()))

	require.NoError(t, index.Rebuild())

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestCardToDocument(t *testing.T) {
	now := time.Now()
	card := &domain.Flashcard{
		ID:         "card-9",
		Question:   "Capital of France?",
		Answer:     "Paris",
		Subject:    "General Knowledge",
		Tags:       []string{"europe"},
		Difficulty: domain.DifficultyEasy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	doc := CardToDocument(card)
	assert.Equal(t, "card-9", doc.ID)
	assert.Equal(t, "Capital of France?", doc.Question)
	assert.Equal(t, "easy", doc.Difficulty)
	assert.Equal(t, now.UnixMilli(), doc.CreatedAt)

	m := doc.ToMap()
	assert.Equal(t, "Paris", m["answer"])
	assert.Equal(t, []string{"europe"}, m["tags"])
}
