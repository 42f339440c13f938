package model

import "time"

// EntityKind identifies the type of a searchable record.
type EntityKind string

const (
	EntityKindRequest EntityKind = "request"
	EntityKindOffer   EntityKind = "offer"
	EntityKindVendor  EntityKind = "vendor"
)

// Known metadata keys per entity kind. Metadata is a typed string map rather
// than an untyped blob; unknown keys are preserved but ignored by the engine.
const (
	MetaLocation      = "location"       // all kinds: city or region label
	MetaBudgetMin     = "budget_min"     // request: lower budget bound, decimal string
	MetaBudgetMax     = "budget_max"     // request: upper budget bound, decimal string
	MetaDeadline      = "deadline"       // request: RFC3339 submission deadline
	MetaVendorRating  = "vendor_rating"  // vendor: aggregate rating, decimal string
	MetaOfferRequest  = "offer_request"  // offer: ID of the request it answers
)

// Candidate is a raw searchable record as returned by an entity provider.
// The engine treats candidates as read-only once fetched.
type Candidate struct {
	ID          string            `json:"id"`
	EntityKind  EntityKind        `json:"entity_kind"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Tags        []string          `json:"tags,omitempty"`
	Price       float64           `json:"price,omitempty"` // 0 means the record carries no price (e.g. vendor profiles)
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// HasPrice reports whether the candidate carries a usable price.
func (c *Candidate) HasPrice() bool {
	return c.Price > 0
}
