package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck_EmptyDeck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)

	require.Contains(t, envelope.Data.Components, "database")
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)

	require.Contains(t, envelope.Data.Components, "sessions")
	assert.Equal(t, "no active sessions", envelope.Data.Components["sessions"].Message)
}

func TestHealthCheck_CountsActiveSessions(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	ts.startSession(t, map[string]any{})

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "1 active session", envelope.Data.Components["sessions"].Message)
}
