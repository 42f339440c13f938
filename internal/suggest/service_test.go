package suggest

import (
	"testing"

	"github.com/procurehub/match-engine/model"
)

// stubVocabulary serves fixed category and location lists.
type stubVocabulary struct {
	categories []string
	locations  []string
}

func (v *stubVocabulary) Categories() []string { return v.categories }
func (v *stubVocabulary) Locations() []string  { return v.locations }

func newTestService(maxSuggestions int) *Service {
	vocabulary := &stubVocabulary{
		categories: []string{"Catering", "Construction", "Cleaning"},
		locations:  []string{"Copenhagen", "Cologne", "Berlin"},
	}
	return NewService(vocabulary, NewHistory(10), maxSuggestions)
}

func TestSuggestionsPrefixMatchIsCaseInsensitive(t *testing.T) {
	service := newTestService(6)

	suggestions := service.Suggestions("co")
	texts := make([]string, 0, len(suggestions))
	for _, suggestion := range suggestions {
		texts = append(texts, suggestion.Text)
	}

	expected := []string{"Construction", "Copenhagen", "Cologne"}
	if len(texts) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, texts)
	}
	for i, text := range expected {
		if texts[i] != text {
			t.Fatalf("Expected %v, got %v", expected, texts)
		}
	}
}

func TestSuggestionsSourceOrdering(t *testing.T) {
	service := newTestService(6)
	service.History().Record("copper wiring")

	suggestions := service.Suggestions("c")
	if len(suggestions) == 0 {
		t.Fatal("Expected suggestions for prefix c")
	}

	// Categories come before locations, history last.
	lastSource := model.SuggestionSourceCategory
	rank := map[model.SuggestionSource]int{
		model.SuggestionSourceCategory: 0,
		model.SuggestionSourceLocation: 1,
		model.SuggestionSourceHistory:  2,
	}
	for _, suggestion := range suggestions {
		if rank[suggestion.Source] < rank[lastSource] {
			t.Fatalf("Sources out of order: %+v", suggestions)
		}
		lastSource = suggestion.Source
	}
	if suggestions[len(suggestions)-1].Source != model.SuggestionSourceHistory {
		t.Errorf("Expected the history entry to rank last, got %+v", suggestions)
	}
}

func TestSuggestionsCappedAtMax(t *testing.T) {
	service := newTestService(2)
	service.History().Record("cranes")

	suggestions := service.Suggestions("c")
	if len(suggestions) != 2 {
		t.Errorf("Expected suggestions capped at 2, got %d", len(suggestions))
	}
}

func TestSuggestionsDeduplicateAcrossSources(t *testing.T) {
	service := newTestService(6)
	// A past query identical to a category must not appear twice.
	service.History().Record("catering")

	suggestions := service.Suggestions("cater")
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 deduplicated suggestion, got %+v", suggestions)
	}
	if suggestions[0].Source != model.SuggestionSourceCategory {
		t.Errorf("Expected the category source to win, got %s", suggestions[0].Source)
	}
}

func TestSuggestionsEmptyPrefixReturnsEverything(t *testing.T) {
	service := newTestService(10)
	service.History().Record("forklift hire")

	suggestions := service.Suggestions("")
	if len(suggestions) != 7 {
		t.Errorf("Expected all 7 entries for an empty prefix, got %d", len(suggestions))
	}
}

func TestSuggestionsNilVocabulary(t *testing.T) {
	history := NewHistory(10)
	history.Record("steel pipes")
	service := NewService(nil, history, 6)

	suggestions := service.Suggestions("steel")
	if len(suggestions) != 1 || suggestions[0].Source != model.SuggestionSourceHistory {
		t.Errorf("Expected a single history suggestion, got %+v", suggestions)
	}
}
