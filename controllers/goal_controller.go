package controllers

import (
	"errors"
	"net/http"

	"github.com/UlyssesVaz/SoundCreditUnion/middlewares"
	"github.com/UlyssesVaz/SoundCreditUnion/models"
	"github.com/UlyssesVaz/SoundCreditUnion/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func goalResponse(goal *models.Goal) gin.H {
	m := services.MetricsFor(goal)
	return gin.H{
		"goal":    goal,
		"metrics": m,
	}
}

func ListGoals(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	status := models.GoalStatus(c.Query("status"))
	switch status {
	case "", models.GoalStatusActive, models.GoalStatusCompleted, models.GoalStatusPaused, models.GoalStatusAbandoned:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + string(status)})
		return
	}

	goals, err := services.ListGoals(userID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(goals))
	for i := range goals {
		out = append(out, goalResponse(&goals[i]))
	}
	c.JSON(http.StatusOK, gin.H{"goals": out, "total": len(out)})
}

func CreateGoal(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input services.GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.CreateGoal(userID, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, goalResponse(goal))
}

func goalID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return uuid.Nil, false
	}
	return id, true
}

func GetGoal(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	id, ok := goalID(c)
	if !ok {
		return
	}

	goal, err := services.GetGoal(userID, id)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, goalResponse(goal))
}

func UpdateGoal(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	id, ok := goalID(c)
	if !ok {
		return
	}

	var input services.GoalUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.UpdateGoal(userID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, goalResponse(goal))
}

func DeleteGoal(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	id, ok := goalID(c)
	if !ok {
		return
	}

	if err := services.DeleteGoal(userID, id); err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type ApplyPurchaseInput struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ApplyPurchase records a confirmed purchase against a goal. This is the
// write counterpart of the read-only impact analysis.
func ApplyPurchase(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	id, ok := goalID(c)
	if !ok {
		return
	}

	var input ApplyPurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.ApplyPurchaseToGoal(userID, id, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, goalResponse(goal))
}

type ImpactAnalysisInput struct {
	PurchaseAmount decimal.Decimal `json:"purchase_amount" binding:"required"`
}

// AnalyzeImpact runs the purchase-impact analysis across the caller's active
// goals. Read-only: no goal is modified.
func AnalyzeImpact(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input ImpactAnalysisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goals, err := services.ActiveGoals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	analysis, err := services.AnalyzePurchaseImpact(input.PurchaseAmount, goals)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) || errors.Is(err, services.ErrMalformedGoal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
