package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a card search.
type Params struct {
	Query string // User's search query

	// Filters
	Subjects   []string // Exact subject names (OR across values)
	Difficulty string   // Exact difficulty level

	// Pagination
	Limit  int
	Offset int

	// Sorting: "relevance" (default) or "recent"
	SortBy string

	Highlight bool // Include match highlighting
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		Highlight: true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single matching card.
type Hit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Subject    string            `json:"subject"`
	Difficulty string            `json:"difficulty,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a card search.
func (s *CardIndex) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildCardQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	switch params.SortBy {
	case "recent":
		searchRequest.SortBy([]string{"-created_at"})
	default:
		searchRequest.SortBy([]string{"-_score"})
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("question")
		searchRequest.Highlight.AddField("answer")
	}

	searchRequest.Fields = []string{"question", "answer", "subject", "difficulty"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		cardHit := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if q, ok := hit.Fields["question"].(string); ok {
			cardHit.Question = q
		}
		if a, ok := hit.Fields["answer"].(string); ok {
			cardHit.Answer = a
		}
		if subj, ok := hit.Fields["subject"].(string); ok {
			cardHit.Subject = subj
		}
		if d, ok := hit.Fields["difficulty"].(string); ok {
			cardHit.Difficulty = d
		}

		if len(hit.Fragments) > 0 {
			cardHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					cardHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, cardHit)
	}

	return result, nil
}

// buildCardQuery constructs the Bleve query from params.
func buildCardQuery(params Params) query.Query {
	var queries []query.Query

	// Main text query: question matches are boosted over answer
	// matches, with fuzzy and prefix variants for typo tolerance and
	// search-as-you-type.
	if params.Query != "" {
		textQueries := []query.Query{}

		questionMatch := bleve.NewMatchQuery(params.Query)
		questionMatch.SetField("question")
		questionMatch.SetBoost(3.0)
		textQueries = append(textQueries, questionMatch)

		answerMatch := bleve.NewMatchQuery(params.Query)
		answerMatch.SetField("answer")
		answerMatch.SetBoost(2.0)
		textQueries = append(textQueries, answerMatch)

		tagMatch := bleve.NewTermQuery(strings.ToLower(params.Query))
		tagMatch.SetField("tags")
		tagMatch.SetBoost(1.5)
		textQueries = append(textQueries, tagMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("question")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("question")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Subject filter (exact match, OR across subjects).
	if len(params.Subjects) > 0 {
		subjectQueries := make([]query.Query, len(params.Subjects))
		for i, subject := range params.Subjects {
			sq := bleve.NewTermQuery(subject)
			sq.SetField("subject")
			subjectQueries[i] = sq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(subjectQueries...))
	}

	// Difficulty filter.
	if params.Difficulty != "" {
		dq := bleve.NewTermQuery(params.Difficulty)
		dq.SetField("difficulty")
		queries = append(queries, dq)
	}

	// Combine all queries with AND.
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}
