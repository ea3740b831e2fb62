package service

import (
	"log/slog"

	"github.com/studydeckapp/studydeck-server/internal/domain"
)

// ProgressService produces the progress view. TotalCards is live from
// the card collection; the remaining stat fields are a fixed placeholder
// snapshot and stay a stub until a session-history schema exists.
type ProgressService struct {
	cards  *CardService
	logger *slog.Logger
}

// NewProgressService creates a new progress service.
func NewProgressService(cards *CardService, logger *slog.Logger) *ProgressService {
	return &ProgressService{
		cards:  cards,
		logger: logger,
	}
}

// Snapshot returns the current stats snapshot.
func (s *ProgressService) Snapshot() domain.ProgressStats {
	return domain.ProgressStats{
		TotalCards:       s.cards.Count(),
		StudiedToday:     12,
		CorrectAnswers:   8,
		TotalAttempts:    12,
		StreakDays:       5,
		TimeSpentMinutes: 45,
	}
}

// Overview bundles the snapshot with its derived display report.
type Overview struct {
	Stats  domain.ProgressStats  `json:"stats"`
	Report domain.ProgressReport `json:"report"`
}

// Overview returns the stats snapshot plus the derived report.
func (s *ProgressService) Overview() Overview {
	stats := s.Snapshot()
	return Overview{
		Stats:  stats,
		Report: domain.Report(stats),
	}
}
