package controllers

import (
	"errors"
	"net/http"

	"github.com/UlyssesVaz/SoundCreditUnion/middlewares"
	"github.com/UlyssesVaz/SoundCreditUnion/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecommendationController struct {
	Recs *services.RecommendationService
}

func NewRecommendationController(recs *services.RecommendationService) *RecommendationController {
	return &RecommendationController{Recs: recs}
}

type RecommendationRequest struct {
	PurchaseContext services.PurchaseContext `json:"purchase_context" binding:"required"`
}

func (rc *RecommendationController) GetRecommendations(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	user, err := services.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recs, err := rc.Recs.Recommend(c.Request.Context(), user, req.PurchaseContext)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrMalformedGoal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

type TrackInput struct {
	RecommendationID uuid.UUID                 `json:"recommendation_id" binding:"required"`
	EventType        string                    `json:"event_type" binding:"required,oneof=shown clicked dismissed"`
	Context          *services.PurchaseContext `json:"context"`
}

func (rc *RecommendationController) Track(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input TrackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := rc.Recs.Track(userID, input.RecommendationID, input.EventType, input.Context)
	if err != nil {
		if errors.Is(err, services.ErrRecommendationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
