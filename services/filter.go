package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/procurehub/match-engine/model"
)

// EntityType selects which entity kinds a search fans out to.
type EntityType string

const (
	EntityTypeAll      EntityType = "all"
	EntityTypeRequests EntityType = "requestsOnly"
	EntityTypeOffers   EntityType = "offersOnly"
	EntityTypeVendors  EntityType = "vendorsOnly"
)

// SortKey names the field a result page is ordered by.
type SortKey string

const (
	SortKeyRelevance SortKey = "relevance"
	SortKeyCreatedAt SortKey = "createdAt"
	SortKeyPrice     SortKey = "price"
)

// SortOrder is "asc" or "desc".
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SearchFilter is the immutable description of one logical search.
type SearchFilter struct {
	Query        string     `json:"query"`
	Category     string     `json:"category,omitempty"`
	Location     string     `json:"location,omitempty"`
	BudgetMin    *float64   `json:"budget_min,omitempty"`
	BudgetMax    *float64   `json:"budget_max,omitempty"`
	EntityType   EntityType `json:"entity_type"`
	SortKey      SortKey    `json:"sort_key,omitempty"`
	SortOrder    SortOrder  `json:"sort_order,omitempty"`
	DeadlineFrom *time.Time `json:"deadline_from,omitempty"`
	DeadlineTo   *time.Time `json:"deadline_to,omitempty"`
}

// Validate checks the filter's internal invariants.
func (f *SearchFilter) Validate() error {
	if f.BudgetMin != nil && f.BudgetMax != nil && *f.BudgetMin > *f.BudgetMax {
		return fmt.Errorf("budget_min (%.2f) must not exceed budget_max (%.2f)", *f.BudgetMin, *f.BudgetMax)
	}
	switch f.EntityType {
	case "", EntityTypeAll, EntityTypeRequests, EntityTypeOffers, EntityTypeVendors:
	default:
		return fmt.Errorf("unknown entity_type '%s'", f.EntityType)
	}
	switch f.SortOrder {
	case "", SortOrderAsc, SortOrderDesc:
	default:
		return fmt.Errorf("unknown sort_order '%s'", f.SortOrder)
	}
	return nil
}

// Kinds returns the entity kinds the filter's EntityType implies, in a
// stable order. An empty EntityType behaves like "all".
func (f *SearchFilter) Kinds() []model.EntityKind {
	switch f.EntityType {
	case EntityTypeRequests:
		return []model.EntityKind{model.EntityKindRequest}
	case EntityTypeOffers:
		return []model.EntityKind{model.EntityKindOffer}
	case EntityTypeVendors:
		return []model.EntityKind{model.EntityKindVendor}
	default:
		return []model.EntityKind{model.EntityKindRequest, model.EntityKindOffer, model.EntityKindVendor}
	}
}

// Signature builds the canonical cache key for the filter: stable field
// order, lower-cased text fields. Two filters that differ only in casing or
// field spelling map to the same signature.
func (f *SearchFilter) Signature() string {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(strings.ToLower(strings.TrimSpace(f.Query)))
	b.WriteString("|cat=")
	b.WriteString(strings.ToLower(strings.TrimSpace(f.Category)))
	b.WriteString("|loc=")
	b.WriteString(strings.ToLower(strings.TrimSpace(f.Location)))
	b.WriteString("|bmin=")
	if f.BudgetMin != nil {
		b.WriteString(strconv.FormatFloat(*f.BudgetMin, 'f', -1, 64))
	}
	b.WriteString("|bmax=")
	if f.BudgetMax != nil {
		b.WriteString(strconv.FormatFloat(*f.BudgetMax, 'f', -1, 64))
	}
	b.WriteString("|type=")
	entityType := f.EntityType
	if entityType == "" {
		entityType = EntityTypeAll
	}
	b.WriteString(string(entityType))
	b.WriteString("|sort=")
	b.WriteString(string(f.SortKey))
	b.WriteString("|order=")
	b.WriteString(string(f.SortOrder))
	b.WriteString("|dfrom=")
	if f.DeadlineFrom != nil {
		b.WriteString(f.DeadlineFrom.UTC().Format(time.RFC3339))
	}
	b.WriteString("|dto=")
	if f.DeadlineTo != nil {
		b.WriteString(f.DeadlineTo.UTC().Format(time.RFC3339))
	}
	return b.String()
}
