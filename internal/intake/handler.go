package intake

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"projectai/internal/project"
	"projectai/internal/shared/server/middleware"
	"projectai/internal/shared/server/respond"
	"projectai/internal/shared/telemetry"
)

// ErrUnknownUser is returned by a UserResolver for ids not in the roster.
var ErrUnknownUser = errors.New("unknown user")

// UserResolver looks up the user an intake is started for.
type UserResolver func(ctx context.Context, id string) (*User, error)

// Handler serves the HTTP intake surface.
type Handler struct {
	Store    *Store
	Prompter Prompter
	Users    UserResolver
}

// NewHandler constructs a Handler.
func NewHandler(store *Store, prompter Prompter, users UserResolver) *Handler {
	return &Handler{Store: store, Prompter: prompter, Users: users}
}

// RegisterRoutes attaches intake routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/intake/sessions")
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.POST("/:id/answers", h.answer)
	g.POST("/:id/reset", h.reset)
	g.DELETE("/:id", h.delete)
}

// View is the JSON state of one session.
type View struct {
	SessionID      string              `json:"session_id"`
	State          State               `json:"state"`
	Question       string              `json:"question,omitempty"`
	Options        []string            `json:"options,omitempty"`
	QuestionsAsked int                 `json:"questions_asked"`
	Collected      map[string]any      `json:"collected"`
	Attributes     *project.Attributes `json:"attributes,omitempty"`
}

type createRequest struct {
	UserID string `json:"user_id"`
}

type answerRequest struct {
	Answer *string `json:"answer" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}

	var user *User
	if id := strings.TrimSpace(req.UserID); id != "" && h.Users != nil {
		u, err := h.Users(c.Request.Context(), id)
		switch {
		case errors.Is(err, ErrUnknownUser):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		case err != nil:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
			return
		}
		user = u
	}

	sess := NewSession(h.Prompter, user)
	id := h.Store.Create(sess)
	c.Set(middleware.SessionIDKey, id)

	var view View
	err := h.Store.With(id, func(s *Session) error {
		var err error
		view, err = h.view(c.Request.Context(), id, s)
		return err
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start intake", nil)
		return
	}
	respond.Created(c, view)
}

func (h *Handler) get(c *gin.Context) {
	h.withSession(c, func(id string, s *Session) {
		view, err := h.view(c.Request.Context(), id, s)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render question", nil)
			return
		}
		respond.OK(c, view)
	})
}

func (h *Handler) answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "answer is required", nil)
		return
	}
	h.withSession(c, func(id string, s *Session) {
		err := s.Answer(*req.Answer)
		var inputErr *InputError
		switch {
		case errors.As(err, &inputErr):
			details := gin.H{"field": inputErr.Field}
			if question, qerr := s.Question(c.Request.Context()); qerr != nil {
				telemetry.Warn("intake.question_failed", map[string]any{
					"session_id": id,
					"field":      inputErr.Field,
					"error":      qerr,
				})
			} else {
				details["question"] = question
			}
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_field_input", inputErr.Message, details)
			return
		case errors.Is(err, ErrComplete):
			respond.Error(c, http.StatusConflict, "intake_complete", "all fields have been collected", nil)
			return
		case err != nil:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record answer", nil)
			return
		}
		view, err := h.view(c.Request.Context(), id, s)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render question", nil)
			return
		}
		respond.OK(c, view)
	})
}

func (h *Handler) reset(c *gin.Context) {
	h.withSession(c, func(id string, s *Session) {
		s.Reset()
		view, err := h.view(c.Request.Context(), id, s)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render question", nil)
			return
		}
		respond.OK(c, view)
	})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.SessionIDKey, id)
	if !h.Store.Delete(id) {
		respond.Error(c, http.StatusNotFound, "not_found", "intake session not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) withSession(c *gin.Context, fn func(id string, s *Session)) {
	id := c.Param("id")
	c.Set(middleware.SessionIDKey, id)
	err := h.Store.With(id, func(s *Session) error {
		fn(id, s)
		return nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "intake session not found", nil)
	}
}

func (h *Handler) view(ctx context.Context, id string, s *Session) (View, error) {
	v := View{
		SessionID: id,
		State:     s.State(),
		Collected: s.Collected(),
	}
	if f, ok := s.Current(); ok {
		q, err := s.Question(ctx)
		if err != nil {
			return View{}, err
		}
		v.Question = q
		v.Options = f.Options
	} else if attrs, ok := s.Attributes(); ok {
		v.Attributes = &attrs
	}
	v.QuestionsAsked = s.QuestionsAsked()
	return v, nil
}
