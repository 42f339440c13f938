// Package search implements the query orchestrator: a single logical search
// fans out to the entity providers implied by the filter, joins on all of
// them, scores and merges the candidates, then sorts and paginates.
package search

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/procurehub/match-engine/internal/errors"
	"github.com/procurehub/match-engine/internal/relevance"
	"github.com/procurehub/match-engine/model"
	"github.com/procurehub/match-engine/services"
)

const defaultPageSize = 10

// Orchestrator coordinates the provider fan-out and the fan-in merge.
type Orchestrator struct {
	providers       map[model.EntityKind]services.EntityProvider
	scorer          *relevance.Scorer
	providerTimeout time.Duration
}

// NewOrchestrator creates an Orchestrator over the given providers.
func NewOrchestrator(providers []services.EntityProvider, scorer *relevance.Scorer, providerTimeout time.Duration) (*Orchestrator, error) {
	if scorer == nil {
		return nil, fmt.Errorf("scorer cannot be nil")
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one entity provider is required")
	}
	byKind := make(map[model.EntityKind]services.EntityProvider, len(providers))
	for _, provider := range providers {
		if _, dup := byKind[provider.Kind()]; dup {
			return nil, fmt.Errorf("duplicate provider for entity kind '%s'", provider.Kind())
		}
		byKind[provider.Kind()] = provider
	}
	return &Orchestrator{
		providers:       byKind,
		scorer:          scorer,
		providerTimeout: providerTimeout,
	}, nil
}

// Search executes one orchestrated search. All provider calls race in
// parallel and the merge waits for every one of them, so the final ordering
// is deterministic given the same provider responses.
//
// If some providers fail or time out, the page built from the survivors is
// returned together with a *errors.PartialResultError naming the failed
// kinds. If every provider fails, no page is returned. A cancelled ctx
// discards all partial results and surfaces ctx.Err().
func (o *Orchestrator) Search(ctx context.Context, filter services.SearchFilter, page, pageSize int) (*services.ResultPage, error) {
	startTime := time.Now()

	if err := filter.Validate(); err != nil {
		return nil, errors.NewValidationError("filter", err.Error())
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	kinds := filter.Kinds()

	type fetchResult struct {
		kind       model.EntityKind
		candidates []model.Candidate
		total      int
		err        error
	}

	resultChan := make(chan fetchResult, len(kinds))

	launched := 0
	var failedKinds []model.EntityKind
	for _, kind := range kinds {
		provider, registered := o.providers[kind]
		if !registered {
			log.Printf("Warning: no provider registered for entity kind '%s'", kind)
			failedKinds = append(failedKinds, kind)
			continue
		}

		launched++
		go func(kind model.EntityKind, provider services.EntityProvider) {
			callCtx, cancel := context.WithTimeout(ctx, o.providerTimeout)
			defer cancel()

			candidates, total, err := provider.Fetch(callCtx, filter, page, pageSize)
			resultChan <- fetchResult{kind: kind, candidates: candidates, total: total, err: err}
		}(kind, provider)
	}

	// Join on every launched provider before merging; a request for an
	// entity type never yields partial data for that type.
	var merged []model.Candidate
	totalCount := 0
	for i := 0; i < launched; i++ {
		fr := <-resultChan
		if ctx.Err() != nil {
			// Superseded search: drop everything collected so far.
			return nil, ctx.Err()
		}
		if fr.err != nil {
			log.Printf("Warning: provider for '%s' failed: %v", fr.kind, fr.err)
			failedKinds = append(failedKinds, fr.kind)
			continue
		}
		merged = append(merged, fr.candidates...)
		totalCount += fr.total
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if len(failedKinds) == len(kinds) {
		return nil, fmt.Errorf("search failed for every entity kind: %w", errors.ErrAllProvidersFailed)
	}

	now := time.Now()
	results := make([]services.ScoredResult, 0, len(merged))
	for i := range merged {
		results = append(results, services.ScoredResult{
			Candidate: merged[i],
			Relevance: o.scorer.Score(filter.Query, &merged[i], now),
		})
	}

	sortResults(results, filter.SortKey, filter.SortOrder)

	// Each provider already applied the page offset, so the merged set is
	// at most one page per provider; keep the best pageSize of it.
	if len(results) > pageSize {
		results = results[:pageSize]
	}

	resultPage := &services.ResultPage{
		Results:    results,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		Took:       time.Since(startTime).Milliseconds(),
		QueryID:    uuid.New().String(),
	}

	if len(failedKinds) > 0 {
		return resultPage, errors.NewPartialResultError(failedKinds)
	}
	return resultPage, nil
}

// sortResults orders merged results in place. Relevance (the default)
// sorts descending with CreatedAt as the tie-break; createdAt and price
// honor the requested order. Under a price sort, candidates without a price
// keep their relative order after every priced candidate.
func sortResults(results []services.ScoredResult, sortKey services.SortKey, sortOrder services.SortOrder) {
	ascending := sortOrder == services.SortOrderAsc

	switch sortKey {
	case services.SortKeyCreatedAt:
		sort.SliceStable(results, func(i, j int) bool {
			itemI := results[i].Candidate.CreatedAt
			itemJ := results[j].Candidate.CreatedAt
			if itemI.Equal(itemJ) {
				return false
			}
			if ascending {
				return itemI.Before(itemJ)
			}
			return itemI.After(itemJ)
		})
	case services.SortKeyPrice:
		sort.SliceStable(results, func(i, j int) bool {
			candI := results[i].Candidate
			candJ := results[j].Candidate
			if candI.HasPrice() && !candJ.HasPrice() {
				return true
			}
			if !candI.HasPrice() {
				return false
			}
			if candI.Price == candJ.Price {
				return false
			}
			if ascending {
				return candI.Price < candJ.Price
			}
			return candI.Price > candJ.Price
		})
	default:
		// Relevance descending, newest first among equals.
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Relevance != results[j].Relevance {
				return results[i].Relevance > results[j].Relevance
			}
			return results[i].Candidate.CreatedAt.After(results[j].Candidate.CreatedAt)
		})
	}
}
