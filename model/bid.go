package model

import "time"

// BidStatus tracks where a bid sits in its lifecycle.
type BidStatus string

const (
	BidStatusPending   BidStatus = "pending"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
	BidStatusWithdrawn BidStatus = "withdrawn"
)

// Bid is a single offer competing for a request. Bids are immutable during
// an evaluation pass.
type Bid struct {
	ID               string    `json:"id"`
	TotalPrice       float64   `json:"total_price"`
	Currency         string    `json:"currency"`
	DeliveryDays     int       `json:"delivery_days"`
	WarrantyMonths   int       `json:"warranty_months,omitempty"`
	QualitySignal    float64   `json:"quality_signal"`    // 0-100
	ExperienceSignal float64   `json:"experience_signal"` // 0-100
	Status           BidStatus `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// EvaluationCriteria holds the four axis weights used to rank bids.
// Weights are raw percentages and are intentionally not re-normalized:
// weights summing to 70 produce a sub-100 score ceiling.
type EvaluationCriteria struct {
	Price      float64 `json:"price"`
	Timeline   float64 `json:"timeline"`
	Quality    float64 `json:"quality"`
	Experience float64 `json:"experience"`
}

// BidScores holds the per-axis and composite scores for one bid, each 0-100.
type BidScores struct {
	Price      float64 `json:"price"`
	Timeline   float64 `json:"timeline"`
	Quality    float64 `json:"quality"`
	Experience float64 `json:"experience"`
	Total      float64 `json:"total"`
}

// ScoredBid is a bid plus its computed scores. Ordering over Scores.Total
// (descending, ties broken by earlier CreatedAt) defines bid rank.
type ScoredBid struct {
	Bid    Bid       `json:"bid"`
	Scores BidScores `json:"scores"`
}
