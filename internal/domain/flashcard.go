// Package domain contains the core flashcard types and the pure logic
// that operates on them: filtering, study sessions, and progress
// aggregation. Nothing in this package touches storage or transport.
package domain

import (
	"strings"
	"time"
)

// Difficulty is the self-assessed difficulty of a flashcard.
type Difficulty string

// Difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Subjects is the closed list of subjects cards can belong to.
// Display names double as the canonical stored values.
var Subjects = []string{
	"Polity",
	"History",
	"Geography",
	"Economy",
	"General Science",
	"Environment",
	"English",
	"Quantitative Aptitude",
	"Reasoning",
	"Current Affairs",
	"General Knowledge",
}

// ValidSubject reports whether s is exactly one of the canonical
// subject names.
func ValidSubject(s string) bool {
	for _, subject := range Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// CanonicalSubject resolves a user-supplied subject to its canonical
// display name. It accepts the display name in any casing, or the
// subject's slug (e.g. "general-science"). Returns "" when the input
// matches no known subject.
func CanonicalSubject(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, subject := range Subjects {
		if lower == strings.ToLower(subject) || lower == Slugify(subject) {
			return subject
		}
	}
	return ""
}

// Flashcard is one study item. ID and CreatedAt are assigned by the
// store on creation and never change afterwards.
type Flashcard struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Subject    string     `json:"subject"`
	Tags       []string   `json:"tags"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// InitTimestamps sets both timestamps to now. Called by the store on
// creation.
func (f *Flashcard) InitTimestamps() {
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
}

// Touch bumps UpdatedAt.
func (f *Flashcard) Touch() {
	f.UpdatedAt = time.Now().UTC()
}

// NormalizeTags trims whitespace, drops empty entries, and suppresses
// case-insensitive duplicates while preserving the first-seen casing
// and insertion order. Always returns a non-nil slice.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
