package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerpath/internal/service"
)

type ProfileHandler struct {
	logger     *zap.Logger
	profileSvc *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		logger:     logger,
		profileSvc: profileSvc,
	}
}

// GetProfile maneja GET /profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	profile, err := h.profileSvc.Get(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("get profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile maneja PUT /profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req struct {
		Headline string `json:"headline"`
		Bio      string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profileSvc.Update(c.Request.Context(), user.ID, service.UpdateProfileInput{
		Headline: req.Headline,
		Bio:      req.Bio,
	})
	if err != nil {
		if errors.Is(err, service.ErrProfileInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("update profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
