package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurehub/match-engine/model"
	"github.com/procurehub/match-engine/services"
	"github.com/procurehub/match-engine/store"
)

const maxPageSize = 100

// API holds dependencies for API handlers: the matching engine and the
// catalog backing its entity providers.
type API struct {
	engine  services.MatchEngine
	catalog *store.Catalog
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.MatchEngine, catalog *store.Catalog) *API {
	return &API{
		engine:  engine,
		catalog: catalog,
	}
}

// SetupRoutes defines all the API routes for the matching engine.
func SetupRoutes(router *gin.Engine, engine services.MatchEngine, catalog *store.Catalog) {
	apiHandler := NewAPI(engine, catalog)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Search and suggestion routes
	router.POST("/search", apiHandler.SearchHandler)
	router.GET("/suggestions", apiHandler.SuggestionsHandler)

	// Bid evaluation route
	router.POST("/bids/evaluate", apiHandler.EvaluateBidsHandler)

	// Catalog seeding routes
	catalogRoutes := router.Group("/catalog")
	{
		catalogRoutes.PUT("/documents", apiHandler.AddCandidatesHandler)        // Add/Update candidates
		catalogRoutes.GET("/documents/stats", apiHandler.CatalogStatsHandler)   // Catalog counts and vocabularies
		catalogRoutes.DELETE("/documents", apiHandler.DeleteAllHandler)         // Delete all candidates
		catalogRoutes.DELETE("/documents/:kind/:id", apiHandler.DeleteHandler)  // Delete a specific candidate
	}
}

// HealthCheckHandler reports service liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"documents": api.catalog.Count(),
	})
}

// AddCandidatesHandler handles the request to add or update catalog records.
// Request Body: {"candidates": [model.Candidate, ...]}
func (api *API) AddCandidatesHandler(c *gin.Context) {
	var req struct {
		Candidates []model.Candidate `json:"candidates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateCandidates(req.Candidates); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.catalog.Add(req.Candidates...); err != nil {
		SendInternalError(c, "add candidates", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Candidates stored successfully",
		"count":   len(req.Candidates),
	})
}

// CatalogStatsHandler returns catalog counts and the suggestion vocabularies.
func (api *API) CatalogStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"documents":  api.catalog.Count(),
		"categories": api.catalog.Categories(),
		"locations":  api.catalog.Locations(),
	})
}

// DeleteAllHandler removes every record from the catalog.
func (api *API) DeleteAllHandler(c *gin.Context) {
	api.catalog.DeleteAll()
	c.JSON(http.StatusOK, gin.H{"message": "All candidates deleted"})
}

// DeleteHandler removes one record by kind and ID.
func (api *API) DeleteHandler(c *gin.Context) {
	kind, ok := ParseEntityKind(c.Param("kind"))
	if !ok {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Unknown entity kind '"+c.Param("kind")+"'")
		return
	}

	if !api.catalog.Delete(kind, c.Param("id")) {
		SendError(c, http.StatusNotFound, ErrorCodeNotFound,
			"Candidate '"+c.Param("id")+"' not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate deleted"})
}
