package controllers

import (
	"net/http"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/config"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

func HealthCheck(c *gin.Context) {
	dbStatus := "connected"
	if sqlDB, err := config.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   apiVersion,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
