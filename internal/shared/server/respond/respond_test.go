package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusUnprocessableEntity, "unknown_category", "unknown value", gin.H{"field": "complexity"})
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fail", nil))

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "unknown_category", body.Error.Code)
	assert.Equal(t, "unknown value", body.Error.Message)
	assert.Equal(t, map[string]any{"field": "complexity"}, body.Error.Details)
}

func TestErrorOmitsEmptyDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusServiceUnavailable, "model_unavailable", "model not loaded", nil)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.NotContains(t, resp.Body.String(), "details")
}
