package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studydeckapp/studydeck-server/internal/domain"
	"github.com/studydeckapp/studydeck-server/internal/service"
)

func (s *Server) registerCardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCards",
		Method:      http.MethodGet,
		Path:        "/api/v1/cards",
		Summary:     "List cards",
		Description: "Returns all flashcards, newest first",
		Tags:        []string{"Cards"},
	}, s.handleListCards)

	huma.Register(s.api, huma.Operation{
		OperationID: "createCard",
		Method:      http.MethodPost,
		Path:        "/api/v1/cards",
		Summary:     "Create card",
		Description: "Creates a new flashcard",
		Tags:        []string{"Cards"},
	}, s.handleCreateCard)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCard",
		Method:      http.MethodPatch,
		Path:        "/api/v1/cards/{id}",
		Summary:     "Update card",
		Description: "Updates a flashcard; ID and creation time are preserved",
		Tags:        []string{"Cards"},
	}, s.handleUpdateCard)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCard",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cards/{id}",
		Summary:     "Delete card",
		Description: "Deletes a flashcard; deleting a missing card succeeds",
		Tags:        []string{"Cards"},
	}, s.handleDeleteCard)

	huma.Register(s.api, huma.Operation{
		OperationID: "filterCards",
		Method:      http.MethodGet,
		Path:        "/api/v1/cards/filter",
		Summary:     "Filter cards",
		Description: "Returns cards matching the subject set and text query",
		Tags:        []string{"Cards"},
	}, s.handleFilterCards)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSubjects",
		Method:      http.MethodGet,
		Path:        "/api/v1/subjects",
		Summary:     "List subjects",
		Description: "Returns the available subjects and which ones are in use",
		Tags:        []string{"Cards"},
	}, s.handleListSubjects)
}

// === DTOs ===

// CardResponse contains flashcard data in API responses.
type CardResponse struct {
	ID         string    `json:"id" doc:"Card ID"`
	Question   string    `json:"question" doc:"Question text"`
	Answer     string    `json:"answer" doc:"Answer text"`
	Subject    string    `json:"subject" doc:"Canonical subject name"`
	Tags       []string  `json:"tags" doc:"Normalized tags"`
	Difficulty string    `json:"difficulty" doc:"Difficulty level: easy, medium, or hard"`
	CreatedAt  time.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt  time.Time `json:"updatedAt" doc:"Last update time"`
}

func cardResponse(c *domain.Flashcard) CardResponse {
	return CardResponse{
		ID:         c.ID,
		Question:   c.Question,
		Answer:     c.Answer,
		Subject:    c.Subject,
		Tags:       c.Tags,
		Difficulty: string(c.Difficulty),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func cardResponses(cards []*domain.Flashcard) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i, c := range cards {
		out[i] = cardResponse(c)
	}
	return out
}

// CardListResponse contains a list of cards.
type CardListResponse struct {
	Cards []CardResponse `json:"cards" doc:"List of cards"`
	Total int            `json:"total" doc:"Number of cards returned"`
}

// CardListOutput wraps the card list response for Huma.
type CardListOutput struct {
	Body CardListResponse
}

// CreateCardRequest is the request body for creating a card.
type CreateCardRequest struct {
	Question   string   `json:"question" doc:"Question text"`
	Answer     string   `json:"answer" doc:"Answer text"`
	Subject    string   `json:"subject" doc:"Subject name or slug"`
	Tags       []string `json:"tags,omitempty" doc:"Free-form tags"`
	Difficulty string   `json:"difficulty,omitempty" doc:"Difficulty level; defaults to easy"`
}

// CreateCardInput wraps the create card request for Huma.
type CreateCardInput struct {
	Body CreateCardRequest
}

// CardOutput wraps a single card response for Huma.
type CardOutput struct {
	Body CardResponse
}

// UpdateCardRequest is the request body for updating a card.
type UpdateCardRequest struct {
	Question   string   `json:"question" doc:"Question text"`
	Answer     string   `json:"answer" doc:"Answer text"`
	Subject    string   `json:"subject" doc:"Subject name or slug"`
	Tags       []string `json:"tags,omitempty" doc:"Free-form tags"`
	Difficulty string   `json:"difficulty" doc:"Difficulty level"`
}

// UpdateCardInput wraps the update card request for Huma.
type UpdateCardInput struct {
	ID   string `path:"id" doc:"Card ID"`
	Body UpdateCardRequest
}

// DeleteCardInput contains parameters for deleting a card.
type DeleteCardInput struct {
	ID string `path:"id" doc:"Card ID"`
}

// FilterCardsInput contains the filter parameters.
type FilterCardsInput struct {
	Subjects string `query:"subjects" doc:"Comma-separated subject names or slugs; a card matches any of them"`
	Query    string `query:"q" doc:"Case-insensitive text query over question, answer, and tags"`
}

// SubjectsResponse lists the available and in-use subjects.
type SubjectsResponse struct {
	Subjects []string `json:"subjects" doc:"All selectable subjects"`
	InUse    []string `json:"in_use" doc:"Subjects that currently have cards"`
}

// SubjectsOutput wraps the subjects response for Huma.
type SubjectsOutput struct {
	Body SubjectsResponse
}

// === Handlers ===

func (s *Server) handleListCards(_ context.Context, _ *struct{}) (*CardListOutput, error) {
	cards := s.services.Card.List()
	return &CardListOutput{Body: CardListResponse{
		Cards: cardResponses(cards),
		Total: len(cards),
	}}, nil
}

func (s *Server) handleCreateCard(ctx context.Context, input *CreateCardInput) (*CardOutput, error) {
	card, err := s.services.Card.CreateCard(ctx, service.CreateCardRequest{
		Question:   input.Body.Question,
		Answer:     input.Body.Answer,
		Subject:    input.Body.Subject,
		Tags:       input.Body.Tags,
		Difficulty: input.Body.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	return &CardOutput{Body: cardResponse(card)}, nil
}

func (s *Server) handleUpdateCard(ctx context.Context, input *UpdateCardInput) (*CardOutput, error) {
	card, err := s.services.Card.UpdateCard(ctx, input.ID, service.UpdateCardRequest{
		Question:   input.Body.Question,
		Answer:     input.Body.Answer,
		Subject:    input.Body.Subject,
		Tags:       input.Body.Tags,
		Difficulty: input.Body.Difficulty,
	})
	if err != nil {
		return nil, err
	}

	return &CardOutput{Body: cardResponse(card)}, nil
}

func (s *Server) handleDeleteCard(ctx context.Context, input *DeleteCardInput) (*MessageOutput, error) {
	if err := s.services.Card.DeleteCard(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Card deleted"}}, nil
}

func (s *Server) handleFilterCards(_ context.Context, input *FilterCardsInput) (*CardListOutput, error) {
	cards := s.services.Card.Filtered(splitCSV(input.Subjects), input.Query)
	return &CardListOutput{Body: CardListResponse{
		Cards: cardResponses(cards),
		Total: len(cards),
	}}, nil
}

func (s *Server) handleListSubjects(_ context.Context, _ *struct{}) (*SubjectsOutput, error) {
	return &SubjectsOutput{Body: SubjectsResponse{
		Subjects: domain.Subjects,
		InUse:    s.services.Card.Subjects(),
	}}, nil
}
