package prediction

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projectai/internal/project"
	"projectai/internal/shared/server/middleware"
	"projectai/internal/shared/server/respond"
)

// AttributesRequest is the JSON body of scoring endpoints. Pointers let a
// legitimate zero (manager experience 0) be told apart from a missing field.
type AttributesRequest struct {
	DurationMonths         *int     `json:"duration_months" binding:"required"`
	Budget                 *float64 `json:"budget" binding:"required"`
	TeamSize               *int     `json:"team_size" binding:"required"`
	AvailableResources     *string  `json:"available_resources" binding:"required"`
	Complexity             *string  `json:"complexity" binding:"required"`
	ManagerExperienceYears *int     `json:"manager_experience_years" binding:"required"`
	ProjectType            *string  `json:"project_type" binding:"required"`
}

// Attributes converts a bound request. Callers must have bound successfully.
func (r AttributesRequest) Attributes() project.Attributes {
	return project.Attributes{
		DurationMonths:         *r.DurationMonths,
		Budget:                 *r.Budget,
		TeamSize:               *r.TeamSize,
		AvailableResources:     *r.AvailableResources,
		Complexity:             *r.Complexity,
		ManagerExperienceYears: *r.ManagerExperienceYears,
		ProjectType:            *r.ProjectType,
	}
}

// BindAttributes decodes the request body, writing a 400 on failure.
func BindAttributes(c *gin.Context) (project.Attributes, bool) {
	var req AttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "all seven project attributes are required", []map[string]string{
			{"issue": err.Error()},
		})
		return project.Attributes{}, false
	}
	return req.Attributes(), true
}

// RespondError maps prediction errors onto the HTTP error body.
func RespondError(c *gin.Context, err error) {
	var unknown *UnknownCategoryError
	var invalid *ValidationError
	switch {
	case errors.Is(err, ErrModelUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "model_unavailable", "Prediction model is not loaded", nil)
	case errors.As(err, &unknown):
		respond.Error(c, http.StatusUnprocessableEntity, "unknown_category", unknown.Error(), gin.H{
			"field":   unknown.Field,
			"value":   unknown.Value,
			"allowed": unknown.Allowed,
		})
	case errors.As(err, &invalid):
		details := make([]map[string]string, len(invalid.Fields))
		for i, f := range invalid.Fields {
			details[i] = map[string]string{"field": f.Field, "issue": f.Reason}
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid project attributes", details)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "prediction failed", nil)
	}
}

// Handler serves POST /predict.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches prediction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/predict", h.predict)
	rg.GET("/model", h.model)
}

func (h *Handler) predict(c *gin.Context) {
	attrs, ok := BindAttributes(c)
	if !ok {
		return
	}
	res, err := h.Svc.Predict(c.Request.Context(), attrs)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Set(middleware.PredictionKey, res.SuccessProbability)
	respond.OK(c, res)
}

func (h *Handler) model(c *gin.Context) {
	meta, ok := h.Svc.Metadata()
	if !ok {
		RespondError(c, ErrModelUnavailable)
		return
	}
	respond.OK(c, gin.H{
		"accuracy":   meta.Accuracy,
		"trained_at": meta.TrainedAt,
		"features":   meta.Features,
		"classes":    meta.Classes,
	})
}
