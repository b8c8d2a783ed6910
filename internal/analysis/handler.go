package analysis

import (
	"github.com/gin-gonic/gin"

	"projectai/internal/prediction"
	"projectai/internal/shared/server/middleware"
	"projectai/internal/shared/server/respond"
)

// Handler serves POST /analyze.
type Handler struct {
	Coord *Coordinator
}

// NewHandler constructs a Handler.
func NewHandler(coord *Coordinator) *Handler {
	return &Handler{Coord: coord}
}

// RegisterRoutes attaches analysis routes; extra middleware runs before the handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.analyze)
	rg.POST("/analyze", handlers...)
}

func (h *Handler) analyze(c *gin.Context) {
	attrs, ok := prediction.BindAttributes(c)
	if !ok {
		return
	}
	res, err := h.Coord.Analyze(c.Request.Context(), attrs)
	if err != nil {
		prediction.RespondError(c, err)
		return
	}
	c.Set(middleware.PredictionKey, res.MLPrediction.SuccessProbability)
	c.Set(middleware.NarrativeStateKey, res.Status)
	respond.OK(c, res)
}
