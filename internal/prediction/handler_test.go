package prediction

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

const riskyBody = `{
	"duration_months": 24,
	"budget": 200000,
	"team_size": 25,
	"available_resources": "Baixo",
	"complexity": "Alta",
	"manager_experience_years": 2,
	"project_type": "TI"
}`

func TestPredictHandlerSuccess(t *testing.T) {
	r := newTestRouter(referenceService(t))

	resp := postJSON(r, "/api/v1/predict", riskyBody)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body Result
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.False(t, body.SuccessPredicted)
	assert.Equal(t, BandMedium, body.ConfidenceBand)
	assert.Len(t, body.Recommendations, 5)
}

func TestPredictHandlerAcceptsZeroExperience(t *testing.T) {
	r := newTestRouter(referenceService(t))

	body := `{"duration_months": 12, "budget": 900000, "team_size": 6, "available_resources": "Alto",
		"complexity": "Baixa", "manager_experience_years": 0, "project_type": "Marketing"}`
	resp := postJSON(r, "/api/v1/predict", body)
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestPredictHandlerErrors(t *testing.T) {
	withoutModel, err := NewService(nil)
	require.NoError(t, err)

	cases := []struct {
		name   string
		svc    *Service
		body   string
		status int
		code   string
	}{
		{name: "missing field", svc: referenceService(t), body: `{"duration_months": 12}`, status: http.StatusBadRequest, code: "validation_error"},
		{name: "malformed json", svc: referenceService(t), body: `{`, status: http.StatusBadRequest, code: "validation_error"},
		{
			name:   "non positive budget",
			svc:    referenceService(t),
			body:   `{"duration_months": 12, "budget": 0, "team_size": 6, "available_resources": "Alto", "complexity": "Baixa", "manager_experience_years": 3, "project_type": "TI"}`,
			status: http.StatusBadRequest,
			code:   "validation_error",
		},
		{
			name:   "unknown category",
			svc:    referenceService(t),
			body:   `{"duration_months": 12, "budget": 10, "team_size": 6, "available_resources": "Abundante", "complexity": "Baixa", "manager_experience_years": 3, "project_type": "TI"}`,
			status: http.StatusUnprocessableEntity,
			code:   "unknown_category",
		},
		{name: "model unavailable", svc: withoutModel, body: riskyBody, status: http.StatusServiceUnavailable, code: "model_unavailable"},
		{name: "malformed json without model", svc: withoutModel, body: `{`, status: http.StatusBadRequest, code: "validation_error"},
		{name: "missing field without model", svc: withoutModel, body: `{"duration_months": 12}`, status: http.StatusBadRequest, code: "validation_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(newTestRouter(tc.svc), "/api/v1/predict", tc.body)
			require.Equal(t, tc.status, resp.Code, resp.Body.String())

			var payload struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
			assert.Equal(t, tc.code, payload.Error.Code)
		})
	}
}

func TestModelMetadataEndpoint(t *testing.T) {
	r := newTestRouter(referenceService(t))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/model", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "resources_encoded")
}
