package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("card")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "card-"))
	// Prefix, separator, then the 21-character NanoID.
	assert.Len(t, got, len("card-")+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		got, err := Generate("sess")
		require.NoError(t, err)
		require.False(t, seen[got], "duplicate id generated: %s", got)
		seen[got] = true
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		got := MustGenerate("card")
		assert.True(t, strings.HasPrefix(got, "card-"))
	})
}
