package domain

import (
	"math"
	"time"
)

// Answer is the judgment recorded for one card position in a study session.
type Answer int8

// Judgment states. A position starts unanswered and is set exactly once.
const (
	AnswerUnanswered Answer = iota
	AnswerCorrect
	AnswerIncorrect
)

// String returns the wire representation of an answer.
func (a Answer) String() string {
	switch a {
	case AnswerCorrect:
		return "correct"
	case AnswerIncorrect:
		return "incorrect"
	default:
		return "unanswered"
	}
}

// SessionResult is emitted to the caller when a completed session is
// explicitly confirmed. TimeSpent is whole minutes, rounded.
type SessionResult struct {
	Correct   int `json:"correct"`
	Total     int `json:"total"`
	TimeSpent int `json:"time_spent"`
}

// Session is one bounded run through an ordered list of cards, collecting a
// correct/incorrect judgment per card. All state lives in memory; every
// invalid action (re-judging, moving past either end) is a defined no-op,
// never an error.
//
// Sessions are not safe for concurrent use; callers serialize access.
type Session struct {
	cards     []*Flashcard
	answers   []Answer
	index     int
	startedAt time.Time
}

// NewSession creates a session over a fixed, ordered card list.
// Precondition: len(cards) >= 1. Callers must never start a session over an
// empty list; the score computation divides by the card count.
func NewSession(cards []*Flashcard) *Session {
	owned := make([]*Flashcard, len(cards))
	copy(owned, cards)
	return &Session{
		cards:     owned,
		answers:   make([]Answer, len(owned)),
		startedAt: time.Now(),
	}
}

// Cards returns the session's card list in traversal order.
func (s *Session) Cards() []*Flashcard { return s.cards }

// Len returns the number of cards in the session.
func (s *Session) Len() int { return len(s.cards) }

// Index returns the current card position.
func (s *Session) Index() int { return s.index }

// Current returns the card at the current position.
func (s *Session) Current() *Flashcard { return s.cards[s.index] }

// Answers returns a copy of the per-position judgments.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Judge records a judgment for the current card. If the current position has
// already been judged, the call is ignored; a judgment is never overwritten.
func (s *Session) Judge(correct bool) {
	if s.answers[s.index] != AnswerUnanswered {
		return
	}
	if correct {
		s.answers[s.index] = AnswerCorrect
	} else {
		s.answers[s.index] = AnswerIncorrect
	}
}

// Advance moves to the next card. No-op at the last card.
func (s *Session) Advance() {
	if s.index < len(s.cards)-1 {
		s.index++
	}
}

// Retreat moves to the previous card. No-op at the first card.
func (s *Session) Retreat() {
	if s.index > 0 {
		s.index--
	}
}

// Complete reports whether every position has been judged. Completion depends
// only on the judgments, not on the cursor: a user can jump back and forth and
// the session completes the instant the last unanswered card is judged.
func (s *Session) Complete() bool {
	for _, a := range s.answers {
		if a == AnswerUnanswered {
			return false
		}
	}
	return true
}

// CorrectCount returns the number of positions judged correct so far.
func (s *Session) CorrectCount() int {
	n := 0
	for _, a := range s.answers {
		if a == AnswerCorrect {
			n++
		}
	}
	return n
}

// Progress returns the display progress percentage: positions fully behind
// the cursor plus the current one when it has been judged.
func (s *Session) Progress() float64 {
	done := s.index
	if s.answers[s.index] != AnswerUnanswered {
		done++
	}
	return float64(done) / float64(len(s.cards)) * 100
}

// Result computes the completion result. Meaningful once Complete() is true;
// the caller emits it only on explicit confirmation.
func (s *Session) Result() SessionResult {
	return s.resultAt(time.Now())
}

func (s *Session) resultAt(now time.Time) SessionResult {
	return SessionResult{
		Correct:   s.CorrectCount(),
		Total:     len(s.cards),
		TimeSpent: int(math.Round(now.Sub(s.startedAt).Minutes())),
	}
}

// Restart recreates the session from scratch: same card list, fresh answers,
// cursor at the first card, clock restarted.
func (s *Session) Restart() {
	s.answers = make([]Answer, len(s.cards))
	s.index = 0
	s.startedAt = time.Now()
}

// ScoreMessage returns the display message for a completed session's score.
// Bands: >=90% top tier, >=75% second, >=60% third, below that encouragement.
func ScoreMessage(correct, total int) string {
	percentage := float64(correct) / float64(total) * 100
	switch {
	case percentage >= 90:
		return "Excellent! 🏆"
	case percentage >= 75:
		return "Great job! 🎉"
	case percentage >= 60:
		return "Good work! 👍"
	default:
		return "Keep practicing! 💪"
	}
}
