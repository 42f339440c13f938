// Package config provides configuration structures for the matching engine.
// It defines cache sizing, TTLs, debounce timing, and provider timeouts.
package config

import (
	"fmt"
	"time"
)

// EngineSettings contains all tunable options for the matching engine.
//
// Zero values are replaced by defaults via ApplyDefaults. The cache capacity
// bounds the number of memoized result pages and suggestion lists held at once.
type EngineSettings struct {
	CacheCapacity    int           `json:"cache_capacity"`     // Max entries held by the result cache (default 10)
	ResultTTL        time.Duration `json:"result_ttl"`         // TTL for cached result pages (default 2m)
	SuggestionTTL    time.Duration `json:"suggestion_ttl"`     // TTL for cached suggestion lists (default 5m)
	DebounceInterval time.Duration `json:"debounce_interval"`  // Quiet period before a query change triggers a search (default 400ms)
	ProviderTimeout  time.Duration `json:"provider_timeout"`   // Upper bound per entity provider call (default 10s)
	HistorySize      int           `json:"history_size"`       // Recent non-empty queries kept for suggestions (default 10)
	MaxSuggestions   int           `json:"max_suggestions"`    // Suggestions returned per prefix (default 6)
	RecencyHalfLife  time.Duration `json:"recency_half_life"`  // Half-life window for the relevance recency bonus (default 30 days)
	DefaultPageSize  int           `json:"default_page_size"`  // Page size used when the caller passes <= 0 (default 10)
	SessionNamespace string        `json:"session_namespace"`  // Optional prefix isolating cache entries per caller session
}

// ApplyDefaults applies default values to unset settings.
func (s *EngineSettings) ApplyDefaults() {
	if s.CacheCapacity == 0 {
		s.CacheCapacity = 10
	}
	if s.ResultTTL == 0 {
		s.ResultTTL = 2 * time.Minute
	}
	if s.SuggestionTTL == 0 {
		s.SuggestionTTL = 5 * time.Minute
	}
	if s.DebounceInterval == 0 {
		s.DebounceInterval = 400 * time.Millisecond
	}
	if s.ProviderTimeout == 0 {
		s.ProviderTimeout = 10 * time.Second
	}
	if s.HistorySize == 0 {
		s.HistorySize = 10
	}
	if s.MaxSuggestions == 0 {
		s.MaxSuggestions = 6
	}
	if s.RecencyHalfLife == 0 {
		s.RecencyHalfLife = 30 * 24 * time.Hour
	}
	if s.DefaultPageSize == 0 {
		s.DefaultPageSize = 10
	}
}

// Validate checks the settings for values that cannot be defaulted away.
func (s *EngineSettings) Validate() error {
	if s.CacheCapacity < 0 {
		return fmt.Errorf("cache_capacity must not be negative, got %d", s.CacheCapacity)
	}
	if s.ResultTTL < 0 || s.SuggestionTTL < 0 {
		return fmt.Errorf("cache TTLs must not be negative")
	}
	if s.DebounceInterval < 0 {
		return fmt.Errorf("debounce_interval must not be negative")
	}
	if s.ProviderTimeout < 0 {
		return fmt.Errorf("provider_timeout must not be negative")
	}
	if s.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", s.HistorySize)
	}
	if s.MaxSuggestions < 0 {
		return fmt.Errorf("max_suggestions must not be negative, got %d", s.MaxSuggestions)
	}
	return nil
}

// DefaultSettings returns a fully-defaulted EngineSettings value.
func DefaultSettings() EngineSettings {
	settings := EngineSettings{}
	settings.ApplyDefaults()
	return settings
}
