package routes

import (
	"os"

	"github.com/UlyssesVaz/SoundCreditUnion/config"
	"github.com/UlyssesVaz/SoundCreditUnion/controllers"
	"github.com/UlyssesVaz/SoundCreditUnion/middlewares"
	"github.com/UlyssesVaz/SoundCreditUnion/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// the extension calls from chrome-extension:// pages
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	hub := services.NewRealtimeHub()
	bus := services.NewEventBus(config.DB, hub)
	recSvc := services.NewRecommendationService(config.DB, services.NewAIService(), bus)
	recCtl := controllers.NewRecommendationController(recSvc)
	anaCtl := controllers.NewAnalyticsController(services.NewAnalyticsService(config.DB))
	rtCtl := controllers.NewRealtimeController(hub)

	r.GET("/health", controllers.HealthCheck)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/refresh", controllers.Refresh)
	}
	r.POST("/auth/logout", middlewares.AuthMiddleware(), controllers.Logout)

	// Protected user routes
	users := r.Group("/users")
	users.Use(middlewares.AuthMiddleware())
	{
		users.GET("/me", controllers.GetProfile)
		users.PUT("/me", controllers.UpdateProfile)
		users.DELETE("/me", controllers.DeleteAccount)
	}

	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.GET("", controllers.ListGoals)
		goals.POST("", controllers.CreateGoal)
		goals.GET("/:id", controllers.GetGoal)
		goals.PUT("/:id", controllers.UpdateGoal)
		goals.DELETE("/:id", controllers.DeleteGoal)
		goals.POST("/:id/apply", controllers.ApplyPurchase)
		goals.POST("/impact-analysis", controllers.AnalyzeImpact)
	}

	r.GET("/products", controllers.ListProducts)

	recs := r.Group("/recommendations")
	recs.Use(middlewares.AuthMiddleware())
	{
		recs.POST("/get", recCtl.GetRecommendations)
		recs.POST("/track", recCtl.Track)
	}

	analytics := r.Group("/analytics")
	analytics.Use(middlewares.AuthMiddleware())
	{
		analytics.POST("/events", anaCtl.TrackEvent)
		analytics.GET("/recommendations/summary", anaCtl.RecommendationSummary)
	}

	r.GET("/realtime/events", middlewares.AuthMiddleware(), rtCtl.EventsWS)

	if os.Getenv("ENVIRONMENT") != "production" {
		r.POST("/dev/seed-products", controllers.SeedProducts)
	}

	return r
}
