package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectai/internal/narrative"
	"projectai/internal/prediction"
)

const riskyBody = `{"duration_months": 24, "budget": 200000, "team_size": 25, "available_resources": "Baixo",
	"complexity": "Alta", "manager_experience_years": 2, "project_type": "TI"}`

func newRouter(coord *Coordinator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(coord).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeHandlerMLOnly(t *testing.T) {
	narrator := narrative.ClientFunc(func(context.Context, narrative.Request) (string, error) {
		return "", errors.New("down")
	})
	r := newRouter(NewCoordinator(stubPredictor{res: riskyPrediction}, narrator, time.Second, 0))

	resp := post(r, riskyBody)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body Result
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, StatusMLOnly, body.Status)
	assert.Equal(t, DegradedNarrative, body.Narrative)
	assert.Equal(t, riskyPrediction.SuccessProbability, body.MLPrediction.SuccessProbability)
	assert.NotEmpty(t, body.CombinedInsights)
}

func TestAnalyzeHandlerPredictionErrors(t *testing.T) {
	r := newRouter(NewCoordinator(stubPredictor{err: prediction.ErrModelUnavailable}, nil, time.Second, 0))
	assert.Equal(t, http.StatusServiceUnavailable, post(r, riskyBody).Code)

	r = newRouter(NewCoordinator(stubPredictor{res: riskyPrediction}, nil, time.Second, 0))
	assert.Equal(t, http.StatusBadRequest, post(r, `{"budget": 1}`).Code)
}

func TestAnalyzeHandlerRunsExtraMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	blocked := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	NewHandler(NewCoordinator(stubPredictor{res: riskyPrediction}, nil, time.Second, 0)).RegisterRoutes(r.Group("/api/v1"), blocked)

	assert.Equal(t, http.StatusTooManyRequests, post(r, riskyBody).Code)
}
