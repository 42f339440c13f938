package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/procurehub/match-engine/internal/errors"
	"github.com/procurehub/match-engine/model"
)

// CriteriaRequest carries the four axis weights. Pointers distinguish a
// missing weight from an explicit zero; all four are required.
type CriteriaRequest struct {
	Price      *float64 `json:"price"`
	Timeline   *float64 `json:"timeline"`
	Quality    *float64 `json:"quality"`
	Experience *float64 `json:"experience"`
}

// EvaluateRequest defines the structure for bid evaluation calls.
type EvaluateRequest struct {
	Bids     []model.Bid     `json:"bids"`
	Criteria CriteriaRequest `json:"criteria"`
}

// EvaluateBidsHandler scores a batch of competing bids against weighted
// criteria and returns them ranked best-first.
// Request Body: EvaluateRequest
func (api *API) EvaluateBidsHandler(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateEvaluateRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	evaluation, err := api.engine.EvaluateBids(req.Bids, toCriteria(req.Criteria))
	if err != nil {
		var validationErr *internalErrors.ValidationError
		if errors.As(err, &validationErr) {
			SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, validationErr.Error())
			return
		}
		SendEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluation)
}
