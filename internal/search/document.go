// Package search provides full-text search over flashcards using Bleve.
// It backs the /search endpoint with fuzzy matching and subject and
// difficulty filtering; the in-memory library filter stays independent
// of this index.
package search

import (
	"github.com/studydeckapp/studydeck-server/internal/domain"
)

// CardDocument is the flashcard shape stored in the Bleve index.
type CardDocument struct {
	ID         string   `json:"id"`
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Subject    string   `json:"subject"`
	Tags       []string `json:"tags,omitempty"`
	Difficulty string   `json:"difficulty"`
	CreatedAt  int64    `json:"created_at"` // Unix millis
	UpdatedAt  int64    `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve defaults to Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *CardDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"question":   d.Question,
		"answer":     d.Answer,
		"subject":    d.Subject,
		"difficulty": d.Difficulty,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	return m
}

// CardToDocument converts a domain Flashcard to its index document.
func CardToDocument(card *domain.Flashcard) *CardDocument {
	return &CardDocument{
		ID:         card.ID,
		Question:   card.Question,
		Answer:     card.Answer,
		Subject:    card.Subject,
		Tags:       card.Tags,
		Difficulty: string(card.Difficulty),
		CreatedAt:  card.CreatedAt.UnixMilli(),
		UpdatedAt:  card.UpdatedAt.UnixMilli(),
	}
}
