package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressService_Overview(t *testing.T) {
	cards := setupCardService(t)
	svc := NewProgressService(cards, slog.New(slog.DiscardHandler))

	_, err := cards.CreateCard(context.Background(), CreateCardRequest{
		Question: "q", Answer: "a", Subject: "History",
	})
	require.NoError(t, err)

	overview := svc.Overview()

	// TotalCards tracks the live collection.
	assert.Equal(t, 1, overview.Stats.TotalCards)

	// The remaining stats are the fixed placeholder snapshot.
	assert.Equal(t, 12, overview.Stats.StudiedToday)
	assert.Equal(t, 8, overview.Stats.CorrectAnswers)
	assert.Equal(t, 12, overview.Stats.TotalAttempts)
	assert.Equal(t, 5, overview.Stats.StreakDays)
	assert.Equal(t, 45, overview.Stats.TimeSpentMinutes)

	// Derived report: 8/12 ≈ 67%, 12/20 = 60%, 45m.
	assert.Equal(t, 67, overview.Report.AccuracyPercent)
	assert.Equal(t, 60, overview.Report.DailyProgressPercent)
	assert.False(t, overview.Report.GoalAchieved)
	assert.Equal(t, "45m", overview.Report.TimeSpentDisplay)
}
