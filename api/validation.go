// Package api provides the HTTP adapter over the matching engine.
package api

import (
	"fmt"

	"github.com/procurehub/match-engine/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateSearchRequest validates a search request body.
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.Page < 0 {
		result.AddError("page", "Page must not be negative")
	}
	if req.PageSize < 0 {
		result.AddError("page_size", "Page size must not be negative")
	}
	if req.PageSize > maxPageSize {
		result.AddError("page_size", fmt.Sprintf("Page size must not exceed %d", maxPageSize))
	}
	if err := req.Filter.Validate(); err != nil {
		result.AddError("filter", err.Error())
	}

	return result
}

// ValidateEvaluateRequest validates a bid evaluation request body. Weight
// presence is enforced here (all four must be supplied); the evaluator
// itself re-checks non-negativity before scoring.
func ValidateEvaluateRequest(req *EvaluateRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(req.Bids) == 0 {
		result.AddError("bids", "At least one bid is required")
	}
	checkWeight(result, "criteria.price", req.Criteria.Price)
	checkWeight(result, "criteria.timeline", req.Criteria.Timeline)
	checkWeight(result, "criteria.quality", req.Criteria.Quality)
	checkWeight(result, "criteria.experience", req.Criteria.Experience)

	return result
}

func checkWeight(result *ValidationResult, field string, weight *float64) {
	if weight == nil {
		result.AddError(field, "Weight is required")
		return
	}
	if *weight < 0 {
		result.AddError(field, "Weight must not be negative")
	}
}

// ValidateCandidates validates candidates submitted to the catalog.
func ValidateCandidates(candidates []model.Candidate) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(candidates) == 0 {
		result.AddError("candidates", "At least one candidate is required")
		return result
	}
	for i, candidate := range candidates {
		if candidate.ID == "" {
			result.AddError(fmt.Sprintf("candidates[%d].id", i), "Candidate ID is required")
		}
		switch candidate.EntityKind {
		case model.EntityKindRequest, model.EntityKindOffer, model.EntityKindVendor:
		default:
			result.AddError(fmt.Sprintf("candidates[%d].entity_kind", i),
				"Entity kind must be one of: request, offer, vendor")
		}
	}

	return result
}

// ParseEntityKind validates a kind path parameter.
func ParseEntityKind(kind string) (model.EntityKind, bool) {
	switch model.EntityKind(kind) {
	case model.EntityKindRequest, model.EntityKindOffer, model.EntityKindVendor:
		return model.EntityKind(kind), true
	default:
		return "", false
	}
}

// toCriteria converts validated pointer weights into the model value.
func toCriteria(req CriteriaRequest) model.EvaluationCriteria {
	criteria := model.EvaluationCriteria{}
	if req.Price != nil {
		criteria.Price = *req.Price
	}
	if req.Timeline != nil {
		criteria.Timeline = *req.Timeline
	}
	if req.Quality != nil {
		criteria.Quality = *req.Quality
	}
	if req.Experience != nil {
		criteria.Experience = *req.Experience
	}
	return criteria
}
