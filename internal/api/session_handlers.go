package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studydeckapp/studydeck-server/internal/service"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "startSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/study/sessions",
		Summary:     "Start study session",
		Description: "Starts a session over the filtered card list; falls back to all cards when the filter matches nothing",
		Tags:        []string{"Study"},
	}, s.handleStartSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/study/sessions/{id}",
		Summary:     "Get session state",
		Description: "Returns the current state of a study session",
		Tags:        []string{"Study"},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "judgeCard",
		Method:      http.MethodPost,
		Path:        "/api/v1/study/sessions/{id}/judge",
		Summary:     "Judge current card",
		Description: "Records correct or incorrect for the current card; re-judging is a no-op",
		Tags:        []string{"Study"},
	}, s.handleJudgeCard)

	huma.Register(s.api, huma.Operation{
		OperationID: "advanceSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/study/sessions/{id}/advance",
		Summary:     "Advance to next card",
		Description: "Moves to the next card; clamped at the last card",
		Tags:        []string{"Study"},
	}, s.handleAdvanceSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "retreatSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/study/sessions/{id}/retreat",
		Summary:     "Go back to previous card",
		Description: "Moves to the previous card; clamped at the first card",
		Tags:        []string{"Study"},
	}, s.handleRetreatSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "restartSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/study/sessions/{id}/restart",
		Summary:     "Restart session",
		Description: "Clears all judgments and starts over with the same cards",
		Tags:        []string{"Study"},
	}, s.handleRestartSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "confirmSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/study/sessions/{id}/confirm",
		Summary:     "Confirm completed session",
		Description: "Returns the final score and removes the session; every card must be judged first",
		Tags:        []string{"Study"},
	}, s.handleConfirmSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "exitSession",
		Method:      http.MethodDelete,
		Path:        "/api/v1/study/sessions/{id}",
		Summary:     "Exit session",
		Description: "Abandons a session without a result; exiting a missing session succeeds",
		Tags:        []string{"Study"},
	}, s.handleExitSession)
}

// === DTOs ===

// StartSessionRequest selects the cards a session runs over.
type StartSessionRequest struct {
	Subjects []string `json:"subjects,omitempty" doc:"Subject names or slugs to study"`
	Query    string   `json:"q,omitempty" doc:"Text query narrowing the card list"`
}

// StartSessionInput wraps the start session request for Huma.
type StartSessionInput struct {
	Body StartSessionRequest
}

// SessionOutput wraps the session view for Huma.
type SessionOutput struct {
	Body service.SessionView
}

// SessionIDInput identifies a session by path parameter.
type SessionIDInput struct {
	ID string `path:"id" doc:"Session ID"`
}

// JudgeRequest carries the judgment for the current card.
type JudgeRequest struct {
	Correct bool `json:"correct" doc:"Whether the card was answered correctly"`
}

// JudgeInput wraps the judge request for Huma.
type JudgeInput struct {
	ID   string `path:"id" doc:"Session ID"`
	Body JudgeRequest
}

// SessionOutcomeOutput wraps the confirmation payload for Huma.
type SessionOutcomeOutput struct {
	Body service.SessionOutcome
}

// === Handlers ===

func (s *Server) handleStartSession(_ context.Context, input *StartSessionInput) (*SessionOutput, error) {
	view, err := s.services.Session.Start(input.Body.Subjects, input.Body.Query)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleGetSession(_ context.Context, input *SessionIDInput) (*SessionOutput, error) {
	view, err := s.services.Session.View(input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleJudgeCard(_ context.Context, input *JudgeInput) (*SessionOutput, error) {
	view, err := s.services.Session.Judge(input.ID, input.Body.Correct)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleAdvanceSession(_ context.Context, input *SessionIDInput) (*SessionOutput, error) {
	view, err := s.services.Session.Advance(input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleRetreatSession(_ context.Context, input *SessionIDInput) (*SessionOutput, error) {
	view, err := s.services.Session.Retreat(input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleRestartSession(_ context.Context, input *SessionIDInput) (*SessionOutput, error) {
	view, err := s.services.Session.Restart(input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Body: view}, nil
}

func (s *Server) handleConfirmSession(_ context.Context, input *SessionIDInput) (*SessionOutcomeOutput, error) {
	outcome, err := s.services.Session.Confirm(input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionOutcomeOutput{Body: outcome}, nil
}

func (s *Server) handleExitSession(_ context.Context, input *SessionIDInput) (*MessageOutput, error) {
	s.services.Session.Exit(input.ID)
	return &MessageOutput{Body: MessageResponse{Message: "Session exited"}}, nil
}
