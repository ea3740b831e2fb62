package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydeckapp/studydeck-server/internal/service"
)

func seedDeck(t *testing.T, ts *testServer) []string {
	t.Helper()
	return []string{
		ts.createTestCard(t, "What is the 73rd amendment about?", "Panchayati Raj", "Polity"),
		ts.createTestCard(t, "Who founded the Maurya empire?", "Chandragupta Maurya", "History"),
		ts.createTestCard(t, "What is fiscal deficit?", "Spending minus revenue", "Economy"),
	}
}

func (ts *testServer) startSession(t *testing.T, body map[string]any) service.SessionView {
	t.Helper()

	resp := ts.api.Post("/api/v1/study/sessions", body)
	require.Equal(t, http.StatusOK, resp.Code, "Start failed: %s", resp.Body.String())

	var envelope testEnvelope[service.SessionView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.SessionID)
	return envelope.Data
}

func TestSessionHandlers_StartEmptyDeck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/study/sessions", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestSessionHandlers_StartAndView(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	view := ts.startSession(t, map[string]any{})
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 0, view.Index)
	assert.False(t, view.Complete)
	require.NotNil(t, view.Card)

	resp := ts.api.Get("/api/v1/study/sessions/" + view.SessionID)
	require.Equal(t, http.StatusOK, resp.Code)

	var fetched testEnvelope[service.SessionView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fetched))
	assert.Equal(t, view.SessionID, fetched.Data.SessionID)
}

func TestSessionHandlers_StartFiltered(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	view := ts.startSession(t, map[string]any{
		"subjects": []string{"polity"},
	})
	assert.Equal(t, 1, view.Total)
	assert.Equal(t, "Polity", view.Card.Subject)
}

func TestSessionHandlers_FilterMissFallsBackToFullDeck(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	view := ts.startSession(t, map[string]any{
		"q": "no card mentions this phrase",
	})
	assert.Equal(t, 3, view.Total)
}

func TestSessionHandlers_JudgeThroughConfirm(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	view := ts.startSession(t, map[string]any{})
	sessionID := view.SessionID

	judgments := []bool{true, false, true}
	for i, correct := range judgments {
		resp := ts.api.Post("/api/v1/study/sessions/"+sessionID+"/judge", map[string]any{
			"correct": correct,
		})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

		if i < len(judgments)-1 {
			resp = ts.api.Post("/api/v1/study/sessions/"+sessionID+"/advance", map[string]any{})
			require.Equal(t, http.StatusOK, resp.Code)
		}
	}

	resp := ts.api.Get("/api/v1/study/sessions/" + sessionID)
	var state testEnvelope[service.SessionView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &state))
	assert.True(t, state.Data.Complete)
	assert.Equal(t, 2, state.Data.CorrectCount)

	resp = ts.api.Post("/api/v1/study/sessions/"+sessionID+"/confirm", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var outcome testEnvelope[service.SessionOutcome]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &outcome))
	assert.Equal(t, 2, outcome.Data.Result.Correct)
	assert.Equal(t, 3, outcome.Data.Result.Total)
	assert.Equal(t, "Good work! 👍", outcome.Data.Message)

	// Confirmed sessions are gone.
	resp = ts.api.Get("/api/v1/study/sessions/" + sessionID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSessionHandlers_ConfirmIncomplete(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	view := ts.startSession(t, map[string]any{})

	resp := ts.api.Post("/api/v1/study/sessions/"+view.SessionID+"/confirm", map[string]any{})
	require.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())

	var envelope testErrorEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "CONFLICT", envelope.Code)
}

func TestSessionHandlers_RetreatAndRestart(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	view := ts.startSession(t, map[string]any{})
	sessionID := view.SessionID

	ts.api.Post("/api/v1/study/sessions/"+sessionID+"/judge", map[string]any{"correct": true})
	ts.api.Post("/api/v1/study/sessions/"+sessionID+"/advance", map[string]any{})

	resp := ts.api.Post("/api/v1/study/sessions/"+sessionID+"/retreat", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	var state testEnvelope[service.SessionView]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &state))
	assert.Equal(t, 0, state.Data.Index)
	assert.Equal(t, 1, state.Data.CorrectCount)

	resp = ts.api.Post("/api/v1/study/sessions/"+sessionID+"/restart", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &state))
	assert.Equal(t, 0, state.Data.Index)
	assert.Equal(t, 0, state.Data.CorrectCount)
	assert.False(t, state.Data.Complete)
}

func TestSessionHandlers_ExitIsIdempotent(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	view := ts.startSession(t, map[string]any{})

	resp := ts.api.Delete("/api/v1/study/sessions/" + view.SessionID)
	require.Equal(t, http.StatusOK, resp.Code)

	// Exiting a session that no longer exists still succeeds.
	resp = ts.api.Delete("/api/v1/study/sessions/" + view.SessionID)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/study/sessions/" + view.SessionID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSessionHandlers_UnknownSession(t *testing.T) {
	ts := setupTestServer(t)
	seedDeck(t, ts)

	resp := ts.api.Post("/api/v1/study/sessions/sess_unknown/judge", map[string]any{"correct": true})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
