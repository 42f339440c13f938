// Package relevance computes the heuristic 0-100 text-match score between a
// free-text query and a candidate. The rule weights and their order are
// fixed: downstream sorting depends on the exact accumulated values, so the
// clamp to [0, 100] is applied once at the end, never per rule.
package relevance

import (
	"strings"
	"time"

	"github.com/procurehub/match-engine/internal/normalize"
	"github.com/procurehub/match-engine/internal/tokenizer"
	"github.com/procurehub/match-engine/model"
)

// Scorer computes relevance scores. It is pure and safe for concurrent use.
type Scorer struct {
	halfLifeDays float64
}

// NewScorer creates a Scorer with the given recency half-life in days.
// A non-positive value falls back to the default 30-day window.
func NewScorer(halfLifeDays float64) *Scorer {
	if halfLifeDays <= 0 {
		halfLifeDays = normalize.DefaultHalfLifeDays
	}
	return &Scorer{halfLifeDays: halfLifeDays}
}

// Score returns the relevance of candidate for query at the given instant.
// An empty or whitespace-only query short-circuits to a flat 100 so that
// browsing without a term shows everything, ordered by recency alone.
func (s *Scorer) Score(query string, candidate *model.Candidate, now time.Time) float64 {
	query = strings.TrimSpace(query)
	if query == "" {
		return 100
	}

	lowerQuery := strings.ToLower(query)
	lowerTitle := strings.ToLower(candidate.Title)
	lowerDescription := strings.ToLower(candidate.Description)
	lowerCategory := strings.ToLower(candidate.Category)

	score := 0.0

	// Whole-query phrase rules. Each condition adds independently; the
	// accumulated value may exceed 100 before the final clamp.
	if lowerTitle == lowerQuery {
		score += 100
	}
	if strings.Contains(lowerTitle, lowerQuery) {
		score += 80
	}
	if strings.HasPrefix(lowerTitle, lowerQuery) {
		score += 60
	}
	if strings.Contains(lowerCategory, lowerQuery) {
		score += 50
	}
	for _, tag := range candidate.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			score += 40
			break
		}
	}
	if strings.Contains(lowerDescription, lowerQuery) {
		score += 30
	}

	// Word-level pass over query tokens longer than two characters.
	titleWords := tokenizer.Tokenize(candidate.Title)
	matchingTokens := 0
	for _, token := range tokenizer.QueryTokens(query) {
		matchedAnywhere := false

		exactWord := false
		for _, word := range titleWords {
			if word == token {
				exactWord = true
				break
			}
		}
		if exactWord {
			score += 25
			matchedAnywhere = true
		} else {
			substring := false
			for _, word := range titleWords {
				if strings.Contains(word, token) || strings.Contains(token, word) {
					substring = true
					break
				}
			}
			if substring {
				score += 15
				matchedAnywhere = true
			}
		}

		if strings.Contains(lowerDescription, token) {
			score += 8
			matchedAnywhere = true
		}
		if strings.Contains(lowerCategory, token) {
			score += 12
			matchedAnywhere = true
		}

		if matchedAnywhere {
			matchingTokens++
		}
	}

	// Multi-word bonus rewards queries whose tokens match across fields.
	if matchingTokens > 1 {
		score += 8 * float64(matchingTokens)
	}

	ageDays := now.Sub(candidate.CreatedAt).Hours() / 24
	score += normalize.RecencyBonus(ageDays, s.halfLifeDays)

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
