package service

import (
	"log/slog"
	"sync"

	"github.com/studydeckapp/studydeck-server/internal/domain"
	domainerrors "github.com/studydeckapp/studydeck-server/internal/errors"
	"github.com/studydeckapp/studydeck-server/internal/id"
)

// SessionService holds active study sessions in an in-memory registry.
// A session starts over the filtered card list (or the full collection
// when the filter matches nothing), collects judgments, and leaves the
// registry on confirm or exit. Nothing about a session is persisted.
type SessionService struct {
	cards  *CardService
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewSessionService creates a new session service.
func NewSessionService(cards *CardService, logger *slog.Logger) *SessionService {
	return &SessionService{
		cards:    cards,
		logger:   logger,
		sessions: make(map[string]*domain.Session),
	}
}

// SessionView is the client-facing snapshot of a session's state.
type SessionView struct {
	SessionID       string           `json:"session_id"`
	Index           int              `json:"index"`
	Total           int              `json:"total"`
	Card            *domain.Flashcard `json:"card"`
	Answers         []string         `json:"answers"`
	CorrectCount    int              `json:"correct_count"`
	ProgressPercent float64          `json:"progress_percent"`
	Complete        bool             `json:"complete"`
}

func viewOf(sessionID string, s *domain.Session) SessionView {
	answers := s.Answers()
	out := make([]string, len(answers))
	for i, a := range answers {
		out[i] = a.String()
	}
	return SessionView{
		SessionID:       sessionID,
		Index:           s.Index(),
		Total:           s.Len(),
		Card:            s.Current(),
		Answers:         out,
		CorrectCount:    s.CorrectCount(),
		ProgressPercent: s.Progress(),
		Complete:        s.Complete(),
	}
}

// Start launches a session over the filtered card list. When the filter
// yields nothing the full collection is used instead; an empty
// collection is a validation error since a session needs at least one
// card.
func (s *SessionService) Start(subjects []string, query string) (SessionView, error) {
	cards := s.cards.Filtered(subjects, query)
	if len(cards) == 0 {
		cards = s.cards.List()
	}
	if len(cards) == 0 {
		return SessionView{}, domainerrors.Validation("cannot start a study session with no cards")
	}

	sessionID, err := id.Generate("sess")
	if err != nil {
		return SessionView{}, domainerrors.Internal("could not create session").WithCause(err)
	}

	session := domain.NewSession(cards)

	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	s.logger.Info("study session started", "session_id", sessionID, "cards", len(cards))
	return viewOf(sessionID, session), nil
}

// View returns the current state of a session.
func (s *SessionService) View(sessionID string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return SessionView{}, domainerrors.NotFoundf("session %s not found", sessionID)
	}
	return viewOf(sessionID, session), nil
}

// Judge records correct/incorrect for the current card. Re-judging an
// already judged position changes nothing.
func (s *SessionService) Judge(sessionID string, correct bool) (SessionView, error) {
	return s.withSession(sessionID, func(session *domain.Session) {
		session.Judge(correct)
	})
}

// Advance moves to the next card.
func (s *SessionService) Advance(sessionID string) (SessionView, error) {
	return s.withSession(sessionID, (*domain.Session).Advance)
}

// Retreat moves to the previous card.
func (s *SessionService) Retreat(sessionID string) (SessionView, error) {
	return s.withSession(sessionID, (*domain.Session).Retreat)
}

// Restart resets the session over the same card list.
func (s *SessionService) Restart(sessionID string) (SessionView, error) {
	return s.withSession(sessionID, (*domain.Session).Restart)
}

// SessionOutcome is the payload emitted when a completed session is
// confirmed.
type SessionOutcome struct {
	Result  domain.SessionResult `json:"result"`
	Message string               `json:"message"`
}

// Confirm emits the completion result and removes the session. The
// session must have every card judged; confirming early is a conflict.
func (s *SessionService) Confirm(sessionID string) (SessionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return SessionOutcome{}, domainerrors.NotFoundf("session %s not found", sessionID)
	}
	if !session.Complete() {
		return SessionOutcome{}, domainerrors.Conflict("session is not complete")
	}

	result := session.Result()
	delete(s.sessions, sessionID)

	s.logger.Info("study session confirmed",
		"session_id", sessionID,
		"correct", result.Correct,
		"total", result.Total,
	)

	return SessionOutcome{
		Result:  result,
		Message: domain.ScoreMessage(result.Correct, result.Total),
	}, nil
}

// Exit abandons a session without a result. Exiting a session that no
// longer exists is fine; the outcome is the same.
func (s *SessionService) Exit(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; ok {
		delete(s.sessions, sessionID)
		s.logger.Info("study session exited", "session_id", sessionID)
	}
}

// ActiveCount returns the number of live sessions.
func (s *SessionService) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionService) withSession(sessionID string, op func(*domain.Session)) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return SessionView{}, domainerrors.NotFoundf("session %s not found", sessionID)
	}
	op(session)
	return viewOf(sessionID, session), nil
}
