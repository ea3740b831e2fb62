package domain

import "strings"

// FilterCards reduces a card collection to the cards matching both the
// subject selection and the free-text query. An empty selection and an
// empty (or whitespace-only) query each pass everything, so
// FilterCards(cards, nil, "") is the identity. The result preserves
// input order and is always a subsequence of the input.
func FilterCards(cards []*Flashcard, subjects []string, query string) []*Flashcard {
	query = strings.ToLower(strings.TrimSpace(query))

	var selected map[string]struct{}
	if len(subjects) > 0 {
		selected = make(map[string]struct{}, len(subjects))
		for _, s := range subjects {
			selected[s] = struct{}{}
		}
	}

	out := make([]*Flashcard, 0, len(cards))
	for _, card := range cards {
		if selected != nil {
			if _, ok := selected[card.Subject]; !ok {
				continue
			}
		}
		if query != "" && !cardMatchesQuery(card, query) {
			continue
		}
		out = append(out, card)
	}
	return out
}

// cardMatchesQuery reports whether the lowercased query appears in the
// card's question, answer, or any tag.
func cardMatchesQuery(card *Flashcard, query string) bool {
	if strings.Contains(strings.ToLower(card.Question), query) {
		return true
	}
	if strings.Contains(strings.ToLower(card.Answer), query) {
		return true
	}
	for _, tag := range card.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// DistinctSubjects returns the subjects present in the collection, in
// first-seen order.
func DistinctSubjects(cards []*Flashcard) []string {
	seen := make(map[string]struct{}, len(cards))
	out := make([]string, 0, len(cards))
	for _, card := range cards {
		if _, dup := seen[card.Subject]; dup {
			continue
		}
		seen[card.Subject] = struct{}{}
		out = append(out, card.Subject)
	}
	return out
}
