// Package evaluate ranks competing bids against a request using weighted
// criteria. It is the single source of truth for the composite score: UI
// weight selectors are merely inputs to this function.
package evaluate

import (
	"log"
	"sort"

	"github.com/procurehub/match-engine/internal/errors"
	"github.com/procurehub/match-engine/internal/normalize"
	"github.com/procurehub/match-engine/model"
	"github.com/procurehub/match-engine/services"
)

// Evaluator scores bid batches. It is stateless and safe for concurrent use.
type Evaluator struct{}

// NewEvaluator creates a new bid Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate scores bids against criteria and returns them sorted by total
// descending, ties broken by earlier CreatedAt.
//
// Price and timeline are min-max normalized across the current batch only
// (no global baseline) and inverted, since lower is better on both axes.
// Quality and experience signals pass through as-is. Weights are applied as
// raw percentages without re-normalization: weights summing to 70 produce a
// sub-100 ceiling on purpose.
//
// A negative weight rejects the whole call with a ValidationError. A bid
// missing its price or delivery time is skipped and reported; scoring
// continues for the rest. An empty bid list yields an empty result.
func (e *Evaluator) Evaluate(bids []model.Bid, criteria model.EvaluationCriteria) (*services.EvaluationResult, error) {
	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}

	result := &services.EvaluationResult{ScoredBids: []model.ScoredBid{}}
	if len(bids) == 0 {
		return result, nil
	}

	valid := make([]model.Bid, 0, len(bids))
	for _, bid := range bids {
		if malformed := checkBid(bid); malformed != nil {
			log.Printf("Warning: skipping bid in evaluation: %v", malformed)
			result.Skipped = append(result.Skipped, services.SkippedBid{
				BidID:  malformed.BidID,
				Reason: malformed.Error(),
			})
			continue
		}
		valid = append(valid, bid)
	}
	if len(valid) == 0 {
		return result, nil
	}

	minPrice, maxPrice := valid[0].TotalPrice, valid[0].TotalPrice
	minDays, maxDays := float64(valid[0].DeliveryDays), float64(valid[0].DeliveryDays)
	for _, bid := range valid[1:] {
		if bid.TotalPrice < minPrice {
			minPrice = bid.TotalPrice
		}
		if bid.TotalPrice > maxPrice {
			maxPrice = bid.TotalPrice
		}
		days := float64(bid.DeliveryDays)
		if days < minDays {
			minDays = days
		}
		if days > maxDays {
			maxDays = days
		}
	}

	for _, bid := range valid {
		scores := model.BidScores{
			Price:      normalize.MinMax(bid.TotalPrice, minPrice, maxPrice, true),
			Timeline:   normalize.MinMax(float64(bid.DeliveryDays), minDays, maxDays, true),
			Quality:    bid.QualitySignal,
			Experience: bid.ExperienceSignal,
		}
		scores.Total = scores.Price*(criteria.Price/100) +
			scores.Timeline*(criteria.Timeline/100) +
			scores.Quality*(criteria.Quality/100) +
			scores.Experience*(criteria.Experience/100)

		result.ScoredBids = append(result.ScoredBids, model.ScoredBid{Bid: bid, Scores: scores})
	}

	sort.SliceStable(result.ScoredBids, func(i, j int) bool {
		itemI := result.ScoredBids[i]
		itemJ := result.ScoredBids[j]
		if itemI.Scores.Total != itemJ.Scores.Total {
			return itemI.Scores.Total > itemJ.Scores.Total
		}
		return itemI.Bid.CreatedAt.Before(itemJ.Bid.CreatedAt)
	})

	return result, nil
}

func validateCriteria(criteria model.EvaluationCriteria) error {
	if criteria.Price < 0 {
		return errors.NewValidationError("price", "weight must not be negative")
	}
	if criteria.Timeline < 0 {
		return errors.NewValidationError("timeline", "weight must not be negative")
	}
	if criteria.Quality < 0 {
		return errors.NewValidationError("quality", "weight must not be negative")
	}
	if criteria.Experience < 0 {
		return errors.NewValidationError("experience", "weight must not be negative")
	}
	return nil
}

// checkBid reports the first missing required field, or nil for a usable bid.
func checkBid(bid model.Bid) *errors.MalformedBidError {
	if bid.TotalPrice <= 0 {
		return errors.NewMalformedBidError(bid.ID, "total_price")
	}
	if bid.DeliveryDays <= 0 {
		return errors.NewMalformedBidError(bid.ID, "delivery_days")
	}
	return nil
}
