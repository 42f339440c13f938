// Package store provides an in-memory catalog of searchable records,
// partitioned by entity kind. It backs the three entity providers the
// orchestrator fans out to and supplies the category/location vocabularies
// used for suggestions.
package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/procurehub/match-engine/model"
	"github.com/procurehub/match-engine/services"
)

// Catalog is a mutex-guarded in-memory record store.
type Catalog struct {
	mu      sync.RWMutex
	records map[model.EntityKind]map[string]model.Candidate
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	records := make(map[model.EntityKind]map[string]model.Candidate)
	for _, kind := range []model.EntityKind{model.EntityKindRequest, model.EntityKindOffer, model.EntityKindVendor} {
		records[kind] = make(map[string]model.Candidate)
	}
	return &Catalog{records: records}
}

// Add inserts or replaces candidates by ID.
func (c *Catalog) Add(candidates ...model.Candidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, candidate := range candidates {
		if candidate.ID == "" {
			return fmt.Errorf("candidate is missing an id")
		}
		partition, known := c.records[candidate.EntityKind]
		if !known {
			return fmt.Errorf("unknown entity kind '%s' for candidate '%s'", candidate.EntityKind, candidate.ID)
		}
		partition[candidate.ID] = candidate
	}
	return nil
}

// Delete removes the candidate with the given ID, reporting whether it existed.
func (c *Catalog) Delete(kind model.EntityKind, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	partition, known := c.records[kind]
	if !known {
		return false
	}
	if _, found := partition[id]; !found {
		return false
	}
	delete(partition, id)
	return true
}

// DeleteAll clears every partition.
func (c *Catalog) DeleteAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for kind := range c.records {
		c.records[kind] = make(map[string]model.Candidate)
	}
}

// Count returns the number of records across all partitions.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, partition := range c.records {
		total += len(partition)
	}
	return total
}

// Categories returns the distinct category names across all records, sorted.
func (c *Catalog) Categories() []string {
	return c.distinct(func(candidate model.Candidate) string { return candidate.Category })
}

// Locations returns the distinct location labels across all records, sorted.
func (c *Catalog) Locations() []string {
	return c.distinct(func(candidate model.Candidate) string { return candidate.Metadata[model.MetaLocation] })
}

func (c *Catalog) distinct(field func(model.Candidate) string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]string)
	for _, partition := range c.records {
		for _, candidate := range partition {
			value := strings.TrimSpace(field(candidate))
			if value != "" {
				seen[strings.ToLower(value)] = value
			}
		}
	}

	values := make([]string, 0, len(seen))
	for _, value := range seen {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// Provider returns an entity provider serving one partition of the catalog.
func (c *Catalog) Provider(kind model.EntityKind) services.EntityProvider {
	return &catalogProvider{catalog: c, kind: kind}
}

// Providers returns providers for all three entity kinds.
func (c *Catalog) Providers() []services.EntityProvider {
	return []services.EntityProvider{
		c.Provider(model.EntityKindRequest),
		c.Provider(model.EntityKindOffer),
		c.Provider(model.EntityKindVendor),
	}
}

type catalogProvider struct {
	catalog *Catalog
	kind    model.EntityKind
}

func (p *catalogProvider) Kind() model.EntityKind {
	return p.kind
}

// Fetch returns one page of candidates matching the filter's applicable
// sub-fields, newest first, plus the pre-pagination match count. Filter
// fields a kind does not understand are ignored: vendor profiles skip the
// budget bounds, and only requests honor deadline bounds.
func (p *catalogProvider) Fetch(ctx context.Context, filter services.SearchFilter, page, pageSize int) ([]model.Candidate, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	p.catalog.mu.RLock()
	partition := p.catalog.records[p.kind]
	matched := make([]model.Candidate, 0, len(partition))
	for _, candidate := range partition {
		if p.matches(candidate, filter) {
			matched = append(matched, candidate)
		}
	}
	p.catalog.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	startIndex := (page - 1) * pageSize
	if startIndex >= total {
		return []model.Candidate{}, total, nil
	}
	endIndex := startIndex + pageSize
	if endIndex > total {
		endIndex = total
	}
	return matched[startIndex:endIndex], total, nil
}

func (p *catalogProvider) matches(candidate model.Candidate, filter services.SearchFilter) bool {
	if filter.Category != "" && !strings.EqualFold(candidate.Category, filter.Category) {
		return false
	}
	if filter.Location != "" && !strings.EqualFold(candidate.Metadata[model.MetaLocation], filter.Location) {
		return false
	}

	// Budget bounds apply to priced records only; vendor profiles carry no
	// price and ignore them.
	if p.kind != model.EntityKindVendor && candidate.HasPrice() {
		if filter.BudgetMin != nil && candidate.Price < *filter.BudgetMin {
			return false
		}
		if filter.BudgetMax != nil && candidate.Price > *filter.BudgetMax {
			return false
		}
	}

	if p.kind == model.EntityKindRequest && (filter.DeadlineFrom != nil || filter.DeadlineTo != nil) {
		deadline, ok := parseDeadline(candidate.Metadata[model.MetaDeadline])
		if !ok {
			return false
		}
		if filter.DeadlineFrom != nil && deadline.Before(*filter.DeadlineFrom) {
			return false
		}
		if filter.DeadlineTo != nil && deadline.After(*filter.DeadlineTo) {
			return false
		}
	}

	// Coarse text match; fine-grained ranking is the relevance scorer's job.
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(candidate.Title), query) ||
		strings.Contains(strings.ToLower(candidate.Description), query) ||
		strings.Contains(strings.ToLower(candidate.Category), query) {
		return true
	}
	for _, tag := range candidate.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	// Fall back to token-level matching so multi-word queries still hit
	// records matching a single word.
	for _, token := range strings.Fields(query) {
		if len(token) < 3 {
			continue
		}
		if strings.Contains(strings.ToLower(candidate.Title), token) ||
			strings.Contains(strings.ToLower(candidate.Description), token) ||
			strings.Contains(strings.ToLower(candidate.Category), token) {
			return true
		}
	}
	return false
}

func parseDeadline(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if unix, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(unix, 0), true
	}
	return time.Time{}, false
}
