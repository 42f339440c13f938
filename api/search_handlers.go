package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/procurehub/match-engine/internal/errors"
	"github.com/procurehub/match-engine/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Filter   services.SearchFilter `json:"filter"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// SearchResponse wraps a result page with degradation info for partial
// failures, so clients can flag which categories of data may be incomplete.
type SearchResponse struct {
	*services.ResultPage
	Partial     bool     `json:"partial,omitempty"`
	FailedKinds []string `json:"failed_kinds,omitempty"`
	Warning     string   `json:"warning,omitempty"`
}

// SearchHandler handles search requests.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateSearchRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	page, err := api.engine.Search(c.Request.Context(), req.Filter, req.Page, req.PageSize)
	if err != nil {
		var validationErr *internalErrors.ValidationError
		if errors.As(err, &validationErr) {
			SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, validationErr.Error())
			return
		}

		var partialErr *internalErrors.PartialResultError
		if errors.As(err, &partialErr) {
			// Degraded but useful: return the surviving results with a
			// warning naming the incomplete entity kinds.
			response := SearchResponse{ResultPage: page, Partial: true, Warning: partialErr.Error()}
			for _, kind := range partialErr.FailedKinds {
				response.FailedKinds = append(response.FailedKinds, string(kind))
			}
			c.JSON(http.StatusPartialContent, response)
			return
		}

		if errors.Is(err, internalErrors.ErrAllProvidersFailed) {
			SendSearchUnavailableError(c, err)
			return
		}
		SendSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{ResultPage: page})
}

// SuggestionsHandler returns typeahead suggestions for the q parameter.
func (api *API) SuggestionsHandler(c *gin.Context) {
	prefix := c.Query("q")
	c.JSON(http.StatusOK, gin.H{
		"suggestions": api.engine.GetSuggestions(prefix),
	})
}
