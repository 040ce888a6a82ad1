package routes

import (
	"concurso-api/controllers"
	"concurso-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Concurso Relatos API is running",
				})
			})

			public.GET("/contests", controllers.GetContests)
			public.GET("/contests/:id", controllers.GetContest)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", controllers.GetProfile)

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.POST("", middleware.RequireRole(middleware.RoleAuthor), controllers.CreateSubmission)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("/maturity-check", controllers.CheckMaturityFlag)
			}
			protected.GET("/contests/:id/submissions", controllers.GetContestSubmissions)

			// Moderation (admin only)
			mod := protected.Group("/moderation", middleware.RequireRole(middleware.RoleAdmin))
			{
				mod.POST("/analyze", controllers.AnalyzePreview)

				mod.POST("/contests/:id/run", controllers.RunContestAnalysis)
				mod.GET("/contests/:id/analysis", controllers.GetContestAnalysis)
				mod.GET("/contests/:id/cache", controllers.GetCachedContestAnalysis)
				mod.DELETE("/cache", controllers.ClearContestAnalysisCache)
				mod.DELETE("/cache/:id", controllers.ClearContestAnalysisCache)

				mod.POST("/submissions/:id/status", controllers.SetModerationStatus)
				mod.POST("/submissions/:id/maturity", controllers.SetSubmissionMaturity)
				mod.GET("/submissions/:id/log", controllers.GetSubmissionModerationLog)
			}
		}
	}
}
