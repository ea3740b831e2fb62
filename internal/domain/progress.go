package domain

import (
	"fmt"
	"math"
)

// DailyGoal is the fixed number of cards a user aims to study per day.
const DailyGoal = 20

// ProgressStats is the snapshot the progress view is derived from.
//
// TotalCards is live (the size of the current collection). The remaining
// fields are a fixed placeholder snapshot; nothing records completed
// sessions yet. They stay a stub until a session-history schema is
// designed.
type ProgressStats struct {
	TotalCards       int `json:"total_cards"`
	StudiedToday     int `json:"studied_today"`
	CorrectAnswers   int `json:"correct_answers"`
	TotalAttempts    int `json:"total_attempts"`
	StreakDays       int `json:"streak_days"`
	TimeSpentMinutes int `json:"time_spent_minutes"`
}

// ProgressReport holds the display values derived from a stats snapshot.
type ProgressReport struct {
	AccuracyPercent      int    `json:"accuracy_percent"`
	DailyGoal            int    `json:"daily_goal"`
	DailyProgressPercent int    `json:"daily_progress_percent"`
	GoalAchieved         bool   `json:"goal_achieved"`
	TimeSpentDisplay     string `json:"time_spent_display"`
}

// Report derives display values from a stats snapshot. Pure: no mutation,
// no side effects.
func Report(stats ProgressStats) ProgressReport {
	accuracy := 0.0
	if stats.TotalAttempts > 0 {
		accuracy = float64(stats.CorrectAnswers) / float64(stats.TotalAttempts) * 100
	}

	daily := math.Min(float64(stats.StudiedToday)/float64(DailyGoal)*100, 100)

	return ProgressReport{
		AccuracyPercent:      int(math.Round(accuracy)),
		DailyGoal:            DailyGoal,
		DailyProgressPercent: int(math.Round(daily)),
		GoalAchieved:         daily >= 100,
		TimeSpentDisplay:     FormatMinutes(stats.TimeSpentMinutes),
	}
}

// FormatMinutes renders total minutes as "45m" or "1h 5m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
