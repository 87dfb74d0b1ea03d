package api

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpath/advisor/internal/telemetry"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler, provider *telemetry.Provider) {
	// Health, readiness and metrics
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	router.GET("/metrics", gin.WrapH(provider.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/ask", handler.Ask) // POST /api/v1/ask

		experiences := v1.Group("/experiences")
		{
			experiences.POST("", handler.SubmitExperience)             // POST /api/v1/experiences
			experiences.GET("", handler.ListExperiences)               // GET /api/v1/experiences
			experiences.GET("/:id", handler.GetExperience)             // GET /api/v1/experiences/:id
			experiences.POST("/:id/approve", handler.ApproveExperience) // POST /api/v1/experiences/:id/approve
			experiences.POST("/:id/reject", handler.RejectExperience)   // POST /api/v1/experiences/:id/reject
		}
	}
}
