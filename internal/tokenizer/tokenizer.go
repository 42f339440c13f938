package tokenizer

import (
	"regexp"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// minQueryTokenLength filters out short noise tokens ("a", "of", "to")
// during word-level relevance scoring.
const minQueryTokenLength = 3

// Tokenize converts a string into a slice of lower-cased tokens, split on
// non-alphanumeric characters.
func Tokenize(text string) []string {
	split := nonAlphanumericRegex.Split(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(split))
	for _, s := range split {
		if s != "" {
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// QueryTokens tokenizes a query for word-level scoring, keeping only tokens
// longer than two characters.
func QueryTokens(query string) []string {
	all := Tokenize(query)
	tokens := make([]string, 0, len(all))
	for _, token := range all {
		if len(token) >= minQueryTokenLength {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
