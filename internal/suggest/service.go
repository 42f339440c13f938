// Package suggest generates typeahead completions for a query prefix, drawn
// from the catalog's category and location vocabularies and from the
// caller's recent-query history.
package suggest

import (
	"strings"

	"github.com/procurehub/match-engine/model"
	"github.com/procurehub/match-engine/services"
)

// Service produces search suggestions.
type Service struct {
	vocabulary     services.Vocabulary
	history        *History
	maxSuggestions int
}

// NewService creates a suggestion Service. vocabulary may be nil, in which
// case only history-based suggestions are produced.
func NewService(vocabulary services.Vocabulary, history *History, maxSuggestions int) *Service {
	return &Service{
		vocabulary:     vocabulary,
		history:        history,
		maxSuggestions: maxSuggestions,
	}
}

// History exposes the underlying recent-query history so searches can be
// recorded into it.
func (s *Service) History() *History {
	return s.history
}

// Suggestions returns up to maxSuggestions completions for prefix,
// categories first, then locations, then recent queries. Matching is a
// case-insensitive prefix test; duplicates across sources are dropped.
func (s *Service) Suggestions(prefix string) []model.SearchSuggestion {
	lowerPrefix := strings.ToLower(strings.TrimSpace(prefix))

	suggestions := make([]model.SearchSuggestion, 0, s.maxSuggestions)
	seen := make(map[string]struct{})

	add := func(text string, source model.SuggestionSource) bool {
		if len(suggestions) >= s.maxSuggestions {
			return false
		}
		lower := strings.ToLower(text)
		if !strings.HasPrefix(lower, lowerPrefix) {
			return true
		}
		if _, dup := seen[lower]; dup {
			return true
		}
		seen[lower] = struct{}{}
		suggestions = append(suggestions, model.SearchSuggestion{Text: text, Source: source})
		return true
	}

	if s.vocabulary != nil {
		for _, category := range s.vocabulary.Categories() {
			if !add(category, model.SuggestionSourceCategory) {
				return suggestions
			}
		}
		for _, location := range s.vocabulary.Locations() {
			if !add(location, model.SuggestionSourceLocation) {
				return suggestions
			}
		}
	}
	if s.history != nil {
		for _, query := range s.history.Recent() {
			if !add(query, model.SuggestionSourceHistory) {
				return suggestions
			}
		}
	}

	return suggestions
}
