package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "preserves insertion order",
			input:    []string{"ancient", "medieval", "modern"},
			expected: []string{"ancient", "medieval", "modern"},
		},
		{
			name:     "suppresses duplicates case-insensitively",
			input:    []string{"Mughal", "mughal", "MUGHAL", "delhi"},
			expected: []string{"Mughal", "delhi"},
		},
		{
			name:     "drops empty and whitespace-only entries",
			input:    []string{" ", "", "gupta", "  maurya  "},
			expected: []string{"gupta", "maurya"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTags(tt.input))
		})
	}
}

func TestValidSubject(t *testing.T) {
	assert.True(t, ValidSubject("History"))
	assert.True(t, ValidSubject("General Science"))
	assert.False(t, ValidSubject("history"))
	assert.False(t, ValidSubject("Astrology"))
	assert.False(t, ValidSubject(""))
}

func TestCanonicalSubject(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"History", "History"},
		{"history", "History"},
		{"general-science", "General Science"},
		{"General Science", "General Science"},
		{"QUANTITATIVE APTITUDE", "Quantitative Aptitude"},
		{"Astrology", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CanonicalSubject(tt.input), "input %q", tt.input)
	}
}

func TestDifficulty_Valid(t *testing.T) {
	assert.True(t, DifficultyEasy.Valid())
	assert.True(t, DifficultyMedium.Valid())
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("extreme").Valid())
	assert.False(t, Difficulty("").Valid())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"General Science", "general-science"},
		{"Quantitative Aptitude", "quantitative-aptitude"},
		{"Polity", "polity"},
		{"Sci-Fi/Fantasy", "sci-fi-fantasy"},
		{"  spaced  out  ", "spaced-out"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slugify(tt.input))
	}
}
