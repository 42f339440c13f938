package services

import (
	"context"

	"github.com/procurehub/match-engine/model"
)

// ScoredResult is a candidate plus its computed relevance (0-100).
// Produced fresh per query; never cached independently of its page.
type ScoredResult struct {
	Candidate model.Candidate `json:"candidate"`
	Relevance float64         `json:"relevance"`
}

// ResultPage is one page of merged, scored, sorted search results.
// TotalCount is the provider-reported total before pagination, summed
// across every entity provider the query fanned out to.
type ResultPage struct {
	Results    []ScoredResult `json:"results"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Took       int64          `json:"took"`     // milliseconds
	QueryID    string         `json:"query_id"` // unique UUID for this search
}

// EvaluationResult is the outcome of scoring a batch of bids. Skipped lists
// the bids rejected as malformed; scoring continued without them.
type EvaluationResult struct {
	ScoredBids []model.ScoredBid `json:"scored_bids"`
	Skipped    []SkippedBid      `json:"skipped,omitempty"`
}

// SkippedBid records one bid excluded from an evaluation and why.
type SkippedBid struct {
	BidID  string `json:"bid_id"`
	Reason string `json:"reason"`
}

// EntityProvider fetches one page of raw candidates of a single kind.
// Implementations must observe ctx and return early when it is cancelled;
// they ignore filter fields they do not understand.
type EntityProvider interface {
	Kind() model.EntityKind
	Fetch(ctx context.Context, filter SearchFilter, page, pageSize int) ([]model.Candidate, int, error)
}

// Searcher runs a full orchestrated search: fan-out, scoring, merge,
// pagination. A partially failed search returns both a usable page and a
// *errors.PartialResultError naming the failed entity kinds.
type Searcher interface {
	Search(ctx context.Context, filter SearchFilter, page, pageSize int) (*ResultPage, error)
}

// BidEvaluator scores competing bids against weighted criteria.
type BidEvaluator interface {
	EvaluateBids(bids []model.Bid, criteria model.EvaluationCriteria) (*EvaluationResult, error)
}

// Suggester produces typeahead suggestions for a query prefix.
type Suggester interface {
	GetSuggestions(prefix string) []model.SearchSuggestion
}

// Vocabulary exposes the known category and location names used to seed
// suggestions. The catalog store implements it.
type Vocabulary interface {
	Categories() []string
	Locations() []string
}

// MatchEngine is the full surface exposed to adapters.
type MatchEngine interface {
	Searcher
	BidEvaluator
	Suggester
}
