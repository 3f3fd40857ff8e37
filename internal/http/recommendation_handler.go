package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerpath/internal/domain"
	"careerpath/internal/service"
)

// RecommendationHandler expone cuestionarios, dashboard y papelera.
type RecommendationHandler struct {
	logger *zap.Logger
	recSvc *service.RecommendationService
}

func NewRecommendationHandler(logger *zap.Logger, recSvc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		logger: logger,
		recSvc: recSvc,
	}
}

type questionnaireRequest struct {
	Skills             string `json:"skills" binding:"max=2000"`
	Interests          string `json:"interests" binding:"max=2000"`
	Strengths          string `json:"strengths" binding:"max=2000"`
	PreferredWorkStyle string `json:"preferred_work_style" binding:"required,oneof=Solo Team Mixed"`
	LongTermGoal       string `json:"long_term_goal" binding:"max=2000"`
}

func (r questionnaireRequest) input() domain.QuestionnaireInput {
	return domain.QuestionnaireInput{
		Skills:             r.Skills,
		Interests:          r.Interests,
		Strengths:          r.Strengths,
		PreferredWorkStyle: r.PreferredWorkStyle,
		LongTermGoal:       r.LongTermGoal,
	}
}

// SubmitQuestionnaire maneja POST /questionnaires.
func (h *RecommendationHandler) SubmitQuestionnaire(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req questionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid questionnaire request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := h.recSvc.Submit(c.Request.Context(), user, req.input())
	if err != nil {
		h.writeError(c, "submit questionnaire failed", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Preview maneja POST /recommendations/preview (no persiste).
func (h *RecommendationHandler) Preview(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req questionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid preview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	set, err := h.recSvc.Preview(c.Request.Context(), user.ID, req.input())
	if err != nil {
		h.writeError(c, "preview failed", err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// Dashboard maneja GET /dashboard.
func (h *RecommendationHandler) Dashboard(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	dash, err := h.recSvc.Dashboard(c.Request.Context(), user.ID)
	if err != nil {
		h.writeError(c, "dashboard failed", err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// GetRecommendation maneja GET /recommendations/:id.
func (h *RecommendationHandler) GetRecommendation(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	detail, err := h.recSvc.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeError(c, "get recommendation failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": detail})
}

// DeleteRecommendation maneja DELETE /recommendations/:id (soft delete).
func (h *RecommendationHandler) DeleteRecommendation(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.recSvc.SoftDelete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeError(c, "delete recommendation failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RestoreRecommendation maneja POST /recommendations/:id/restore.
func (h *RecommendationHandler) RestoreRecommendation(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.recSvc.Restore(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeError(c, "restore recommendation failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecommendationHandler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrQuestionnaireInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case errors.Is(err, service.ErrRecommendationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
	case errors.Is(err, service.ErrRecommendationDeleted):
		c.JSON(http.StatusConflict, gin.H{"error": "recommendation is in the recycle bin"})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
