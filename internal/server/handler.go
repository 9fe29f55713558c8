package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leofalp/quizforge/core/generate"
	"github.com/leofalp/quizforge/core/quiz"
	"github.com/leofalp/quizforge/providers/workflow"
)

// MessageNotConfigured is the fixed error text for missing upstream credentials.
const MessageNotConfigured = "Dify API is not configured"

// Generator produces quiz questions. *generate.Service implements it.
type Generator interface {
	Generate(ctx context.Context, request generate.Request) (*generate.Result, error)
}

// Handler serves the quiz API.
type Handler struct {
	generator    Generator
	parser       *quiz.Parser
	defaultSkill quiz.Skill
}

// NewHandler builds a Handler. A nil parser uses quiz.New and an empty
// defaultSkill selects quiz.SkillGeneral.
func NewHandler(generator Generator, parser *quiz.Parser, defaultSkill quiz.Skill) *Handler {
	if parser == nil {
		parser = quiz.New()
	}
	if defaultSkill == "" {
		defaultSkill = quiz.SkillGeneral
	}
	return &Handler{generator: generator, parser: parser, defaultSkill: defaultSkill}
}

// RegisterRoutes mounts the health probe and the /api routes on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.health)

	api := r.Group("/api")
	api.POST("/generate-questions", h.generateQuestions)
	api.POST("/parse-questions", h.parseQuestions)
}

type parseRequest struct {
	Raw          string     `json:"raw"`
	Skill        quiz.Skill `json:"skill"`
	QuestionType quiz.Kind  `json:"questionType"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) generateQuestions(c *gin.Context) {
	var req generate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		status, message := statusForError(err)
		if status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(status, errorResponse{Error: message})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) parseQuestions(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if strings.TrimSpace(string(req.QuestionType)) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: (&generate.ValidationError{Fields: []string{"questionType"}}).Error()})
		return
	}

	skill := req.Skill
	if strings.TrimSpace(string(skill)) == "" {
		skill = h.defaultSkill
	}

	questions := h.parser.Parse(c.Request.Context(), req.Raw, quiz.Defaults{
		Skill: skill,
		Kind:  quiz.Kind(strings.TrimSpace(string(req.QuestionType))),
	})

	c.JSON(http.StatusOK, generate.Result{Questions: questions, Raw: req.Raw})
}

// statusForError maps service errors onto HTTP status codes and the message
// returned to the caller.
func statusForError(err error) (int, string) {
	var validationErr *generate.ValidationError
	var upstreamErr *workflow.UpstreamError

	switch {
	case errors.Is(err, generate.ErrNotConfigured):
		return http.StatusInternalServerError, MessageNotConfigured
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &upstreamErr):
		status := upstreamErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return status, upstreamErr.Message
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
