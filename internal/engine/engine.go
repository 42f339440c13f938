// Package engine wires the matching engine together: the result cache in
// front of the query orchestrator, the bid evaluator, the suggestion
// service, and session-scoped lifecycle controllers. There is no ambient
// singleton; an Engine is constructed once per process or session and torn
// down with it.
package engine

import (
	"context"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/procurehub/match-engine/config"
	"github.com/procurehub/match-engine/internal/cache"
	internalErrors "github.com/procurehub/match-engine/internal/errors"
	"github.com/procurehub/match-engine/internal/evaluate"
	"github.com/procurehub/match-engine/internal/lifecycle"
	"github.com/procurehub/match-engine/internal/relevance"
	"github.com/procurehub/match-engine/internal/search"
	"github.com/procurehub/match-engine/internal/suggest"
	"github.com/procurehub/match-engine/model"
	"github.com/procurehub/match-engine/services"
)

// cachedSearch is the cache value for one search: the page plus the entity
// kinds that failed when it was fetched, so a cache hit reproduces the same
// degraded view the original fetch produced.
type cachedSearch struct {
	page        *services.ResultPage
	failedKinds []model.EntityKind
}

// Engine implements services.MatchEngine.
type Engine struct {
	settings     config.EngineSettings
	orchestrator *search.Orchestrator
	evaluator    *evaluate.Evaluator
	suggester    *suggest.Service
	cache        *cache.Store
	flight       singleflight.Group
}

// NewEngine creates an Engine over the given entity providers. vocabulary
// supplies category and location names for suggestions and may be nil.
func NewEngine(settings config.EngineSettings, providers []services.EntityProvider, vocabulary services.Vocabulary) (*Engine, error) {
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	scorer := relevance.NewScorer(settings.RecencyHalfLife.Hours() / 24)
	orchestrator, err := search.NewOrchestrator(providers, scorer, settings.ProviderTimeout)
	if err != nil {
		return nil, err
	}

	history := suggest.NewHistory(settings.HistorySize)
	return &Engine{
		settings:     settings,
		orchestrator: orchestrator,
		evaluator:    evaluate.NewEvaluator(),
		suggester:    suggest.NewService(vocabulary, history, settings.MaxSuggestions),
		cache:        cache.NewStore(settings.CacheCapacity),
	}, nil
}

// Search serves one page of results for filter, from cache when a fresh
// entry exists. Identical concurrent misses are collapsed into a single
// orchestrated fetch. Pages fetched under partial provider failure are
// cached too: they are usable, and hits within the TTL resurface the same
// *errors.PartialResultError so callers see consistent degradation.
func (e *Engine) Search(ctx context.Context, filter services.SearchFilter, page, pageSize int) (*services.ResultPage, error) {
	if err := filter.Validate(); err != nil {
		return nil, internalErrors.NewValidationError("filter", err.Error())
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = e.settings.DefaultPageSize
	}

	key := e.searchKey(filter, page, pageSize)
	if value, found := e.cache.Get(key); found {
		return e.unpack(value.(*cachedSearch))
	}

	value, err, _ := e.flight.Do(key, func() (interface{}, error) {
		resultPage, searchErr := e.orchestrator.Search(ctx, filter, page, pageSize)
		if resultPage == nil {
			return nil, searchErr
		}

		cached := &cachedSearch{page: resultPage}
		if partial, ok := searchErr.(*internalErrors.PartialResultError); ok {
			cached.failedKinds = partial.FailedKinds
		}
		e.cache.Put(key, cached, e.settings.ResultTTL)
		e.suggester.History().Record(filter.Query)
		return cached, nil
	})
	if err != nil {
		return nil, err
	}
	return e.unpack(value.(*cachedSearch))
}

func (e *Engine) unpack(cached *cachedSearch) (*services.ResultPage, error) {
	if len(cached.failedKinds) > 0 {
		return cached.page, internalErrors.NewPartialResultError(cached.failedKinds)
	}
	return cached.page, nil
}

func (e *Engine) searchKey(filter services.SearchFilter, page, pageSize int) string {
	var b strings.Builder
	if e.settings.SessionNamespace != "" {
		b.WriteString(e.settings.SessionNamespace)
		b.WriteString("::")
	}
	b.WriteString("search|")
	b.WriteString(filter.Signature())
	b.WriteString("|page=")
	b.WriteString(strconv.Itoa(page))
	b.WriteString("|size=")
	b.WriteString(strconv.Itoa(pageSize))
	return b.String()
}

// GetSuggestions returns typeahead completions for prefix. Suggestion lists
// change far less often than live result sets, so they cache under the
// longer suggestion TTL.
func (e *Engine) GetSuggestions(prefix string) []model.SearchSuggestion {
	key := e.suggestionKey(prefix)
	if value, found := e.cache.Get(key); found {
		return value.([]model.SearchSuggestion)
	}

	suggestions := e.suggester.Suggestions(prefix)
	e.cache.Put(key, suggestions, e.settings.SuggestionTTL)
	return suggestions
}

func (e *Engine) suggestionKey(prefix string) string {
	key := "suggest|" + strings.ToLower(strings.TrimSpace(prefix))
	if e.settings.SessionNamespace != "" {
		key = e.settings.SessionNamespace + "::" + key
	}
	return key
}

// EvaluateBids scores competing bids against weighted criteria.
func (e *Engine) EvaluateBids(bids []model.Bid, criteria model.EvaluationCriteria) (*services.EvaluationResult, error) {
	result, err := e.evaluator.Evaluate(bids, criteria)
	if err != nil {
		return nil, err
	}
	if len(result.Skipped) > 0 {
		log.Printf("Warning: evaluation skipped %d malformed bid(s)", len(result.Skipped))
	}
	return result, nil
}

// NewSession creates a lifecycle controller bound to this engine for
// callers that feed it raw query-change events. The controller debounces
// changes and cancels superseded in-flight searches before apply is called.
func (e *Engine) NewSession(apply lifecycle.ApplyFunc) *lifecycle.Controller {
	return lifecycle.NewController(e.Search, apply, e.settings.DebounceInterval, e.settings.DefaultPageSize)
}

// Settings returns the effective (defaulted) engine settings.
func (e *Engine) Settings() config.EngineSettings {
	return e.settings
}

var _ services.MatchEngine = (*Engine)(nil)
