package controllers

import (
	"net/http"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/middlewares"
	"github.com/UlyssesVaz/SoundCreditUnion/models"
	"github.com/UlyssesVaz/SoundCreditUnion/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(a *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: a}
}

type EventInput struct {
	EventType string         `json:"event_type" binding:"required,max=100"`
	EventData models.JSONMap `json:"event_data"`
	SessionID string         `json:"session_id"`
	PageURL   string         `json:"page_url"`
}

// TrackEvent accepts raw telemetry from the extension (page views, widget
// opens). Recommendation events go through /recommendations/track instead.
func (ac *AnalyticsController) TrackEvent(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := ac.Analytics.RecordEvent(c.Request.Context(), &userID, input.EventType, input.EventData, input.SessionID, input.PageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (ac *AnalyticsController) RecommendationSummary(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date, use YYYY-MM-DD"})
			return
		}
		from = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date, use YYYY-MM-DD"})
			return
		}
		to = t
	}

	summary, err := ac.Analytics.RecommendationSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
