package model

// SuggestionSource identifies where a search suggestion was drawn from.
type SuggestionSource string

const (
	SuggestionSourceCategory SuggestionSource = "category"
	SuggestionSourceLocation SuggestionSource = "location"
	SuggestionSourceHistory  SuggestionSource = "history"
)

// SearchSuggestion is a single typeahead completion for a query prefix.
type SearchSuggestion struct {
	Text   string           `json:"text"`
	Source SuggestionSource `json:"source"`
}
