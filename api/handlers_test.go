package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurehub/match-engine/config"
	"github.com/procurehub/match-engine/internal/engine"
	"github.com/procurehub/match-engine/model"
	"github.com/procurehub/match-engine/store"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *store.Catalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := store.NewCatalog()
	matchEngine, err := engine.NewEngine(config.EngineSettings{}, catalog.Providers(), catalog)
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, matchEngine, catalog)
	return router, catalog
}

func seedTestCatalog(t *testing.T, catalog *store.Catalog) {
	t.Helper()
	now := time.Now()
	err := catalog.Add(
		model.Candidate{
			ID: "req1", EntityKind: model.EntityKindRequest,
			Title: "Steel pipes for warehouse", Category: "Construction",
			Price: 5000, CreatedAt: now.Add(-time.Hour),
			Metadata: map[string]string{model.MetaLocation: "Berlin"},
		},
		model.Candidate{
			ID: "off1", EntityKind: model.EntityKindOffer,
			Title: "Surplus steel pipes", Category: "Construction",
			Price: 4200, CreatedAt: now.Add(-30 * time.Minute),
			Metadata: map[string]string{model.MetaLocation: "Berlin"},
		},
		model.Candidate{
			ID: "ven1", EntityKind: model.EntityKindVendor,
			Title: "PipeWorks GmbH", Category: "Construction",
			CreatedAt: now.Add(-72 * time.Hour),
			Metadata:  map[string]string{model.MetaLocation: "Berlin"},
		},
	)
	require.NoError(t, err)
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealthCheck(t *testing.T) {
	router, catalog := setupTestRouter(t)
	seedTestCatalog(t, catalog)

	recorder := performJSON(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.EqualValues(t, 3, response["documents"])
}

func TestSearchEndpoint(t *testing.T) {
	router, catalog := setupTestRouter(t)
	seedTestCatalog(t, catalog)

	body := map[string]interface{}{
		"filter":    map[string]interface{}{"query": "steel pipes"},
		"page":      1,
		"page_size": 10,
	}
	recorder := performJSON(router, http.MethodPost, "/search", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response SearchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.NotNil(t, response.ResultPage)
	assert.False(t, response.Partial)
	assert.NotEmpty(t, response.QueryID)
	assert.Len(t, response.Results, 2)
	// Both title matches outrank nothing here; ordering is by relevance.
	for _, result := range response.Results {
		assert.Greater(t, result.Relevance, 0.0)
	}
}

func TestSearchEndpointInvalidJSON(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var apiError APIError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &apiError))
	assert.Equal(t, ErrorCodeInvalidJSON, apiError.Code)
}

func TestSearchEndpointValidation(t *testing.T) {
	router, _ := setupTestRouter(t)

	body := map[string]interface{}{
		"filter": map[string]interface{}{
			"query":      "steel",
			"budget_min": 900,
			"budget_max": 100,
		},
	}
	recorder := performJSON(router, http.MethodPost, "/search", body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	body = map[string]interface{}{
		"filter":    map[string]interface{}{"query": "steel"},
		"page_size": maxPageSize + 1,
	}
	recorder = performJSON(router, http.MethodPost, "/search", body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSuggestionsEndpoint(t *testing.T) {
	router, catalog := setupTestRouter(t)
	seedTestCatalog(t, catalog)

	recorder := performJSON(router, http.MethodGet, "/suggestions?q=con", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Suggestions []model.SearchSuggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Suggestions, 1)
	assert.Equal(t, "Construction", response.Suggestions[0].Text)
	assert.Equal(t, model.SuggestionSourceCategory, response.Suggestions[0].Source)
}

func TestEvaluateBidsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	now := time.Now()
	body := map[string]interface{}{
		"bids": []map[string]interface{}{
			{"id": "bid1", "total_price": 1000, "delivery_days": 5, "quality_signal": 80, "experience_signal": 50, "created_at": now},
			{"id": "bid2", "total_price": 1500, "delivery_days": 10, "quality_signal": 80, "experience_signal": 50, "created_at": now},
			{"id": "bid3", "total_price": 2000, "delivery_days": 15, "quality_signal": 80, "experience_signal": 50, "created_at": now},
		},
		"criteria": map[string]interface{}{"price": 40, "timeline": 30, "quality": 20, "experience": 10},
	}
	recorder := performJSON(router, http.MethodPost, "/bids/evaluate", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		ScoredBids []struct {
			Bid    model.Bid       `json:"bid"`
			Scores model.BidScores `json:"scores"`
		} `json:"scored_bids"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.ScoredBids, 3)
	assert.Equal(t, "bid1", response.ScoredBids[0].Bid.ID)
	assert.InDelta(t, 91.0, response.ScoredBids[0].Scores.Total, 1e-6)
	assert.Equal(t, "bid3", response.ScoredBids[2].Bid.ID)
}

func TestEvaluateBidsEndpointMissingWeight(t *testing.T) {
	router, _ := setupTestRouter(t)

	body := map[string]interface{}{
		"bids": []map[string]interface{}{
			{"id": "bid1", "total_price": 1000, "delivery_days": 5},
		},
		"criteria": map[string]interface{}{"price": 40, "timeline": 30, "quality": 20},
	}
	recorder := performJSON(router, http.MethodPost, "/bids/evaluate", body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var apiError APIError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &apiError))
	assert.Equal(t, ErrorCodeValidationFailed, apiError.Code)
}

func TestAddCandidatesEndpoint(t *testing.T) {
	router, catalog := setupTestRouter(t)

	body := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"id": "req9", "entity_kind": "request", "title": "Office chairs", "category": "Furniture"},
		},
	}
	recorder := performJSON(router, http.MethodPut, "/catalog/documents", body)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, catalog.Count())

	// Unknown kinds are rejected before touching the catalog.
	body = map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"id": "bad", "entity_kind": "contract", "title": "Nope"},
		},
	}
	recorder = performJSON(router, http.MethodPut, "/catalog/documents", body)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 1, catalog.Count())
}

func TestCatalogStatsEndpoint(t *testing.T) {
	router, catalog := setupTestRouter(t)
	seedTestCatalog(t, catalog)

	recorder := performJSON(router, http.MethodGet, "/catalog/documents/stats", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Documents  int      `json:"documents"`
		Categories []string `json:"categories"`
		Locations  []string `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, 3, response.Documents)
	assert.Equal(t, []string{"Construction"}, response.Categories)
	assert.Equal(t, []string{"Berlin"}, response.Locations)
}

func TestDeleteEndpoints(t *testing.T) {
	router, catalog := setupTestRouter(t)
	seedTestCatalog(t, catalog)

	recorder := performJSON(router, http.MethodDelete, "/catalog/documents/request/req1", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 2, catalog.Count())

	recorder = performJSON(router, http.MethodDelete, "/catalog/documents/request/req1", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = performJSON(router, http.MethodDelete, "/catalog/documents/contract/req1", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = performJSON(router, http.MethodDelete, "/catalog/documents", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 0, catalog.Count())
}

func TestSearchEndpointDefaultsPaging(t *testing.T) {
	router, catalog := setupTestRouter(t)
	for i := 0; i < 15; i++ {
		require.NoError(t, catalog.Add(model.Candidate{
			ID:         fmt.Sprintf("off%d", i),
			EntityKind: model.EntityKindOffer,
			Title:      "Bulk offer",
			CreatedAt:  time.Now().Add(-time.Duration(i) * time.Minute),
		}))
	}

	body := map[string]interface{}{
		"filter": map[string]interface{}{"query": "", "entity_type": "offersOnly"},
	}
	recorder := performJSON(router, http.MethodPost, "/search", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response SearchResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Results, 10, "zero page size falls back to the default")
	assert.EqualValues(t, 15, response.TotalCount)
}
