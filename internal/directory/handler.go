package directory

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projectai/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.list)
	rg.GET("/users/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}
	respond.OK(c, gin.H{"users": users})
}

func (h *Handler) get(c *gin.Context) {
	user, err := h.Svc.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", gin.H{"user_id": c.Param("id")})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, user)
}
