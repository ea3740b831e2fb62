package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studydeckapp/studydeck-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCards",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search cards",
		Description: "Full-text search over questions, answers, and tags",
		Tags:        []string{"Search"},
	}, s.handleSearchCards)
}

// === DTOs ===

// SearchInput contains parameters for searching cards.
type SearchInput struct {
	Query      string `query:"q" required:"true" validate:"required,min=1,max=200" doc:"Search query"`
	Subjects   string `query:"subjects" validate:"omitempty,max=200" doc:"Comma-separated subjects to filter by"`
	Difficulty string `query:"difficulty" validate:"omitempty,max=10" doc:"Difficulty to filter by"`
	Limit      int    `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max results (default 20)"`
	Offset     int    `query:"offset" validate:"omitempty,gte=0" doc:"Pagination offset (default 0)"`
	Sort       string `query:"sort" validate:"omitempty,oneof=relevance recent" doc:"Sort order: relevance (default) or recent"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body search.Result
}

// === Handlers ===

func (s *Server) handleSearchCards(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Subjects = splitCSV(input.Subjects)
	params.Difficulty = input.Difficulty
	params.Offset = input.Offset
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Sort != "" {
		params.SortBy = input.Sort
	}

	s.logger.Debug("card search request",
		"query", params.Query,
		"subjects", params.Subjects,
		"limit", params.Limit,
	)

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}
