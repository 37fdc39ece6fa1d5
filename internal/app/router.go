package app

import (
	"mentora_backend/internal/config"
	"mentora_backend/internal/middleware"
	"mentora_backend/internal/model"
	"mentora_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.participant))
	{
		a.registerParticipantRoutes(authGroup, c)
		a.registerMentorRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/quote", c.participant.GetDailyQuote)
	}
}

// registerParticipantRoutes holds everything a logged-in participant can do
// against their own cycle, tasks and progress.
func (a *App) registerParticipantRoutes(authGroup *gin.RouterGroup, c *controllers) {
	cycles := authGroup.Group("/cycles")
	{
		cycles.GET("/dates", c.cycle.CalculateCycleDates)
		cycles.GET("/can-start", c.cycle.CanStartNewCycle)
		cycles.GET("/remaining-days", c.cycle.CalculateRemainingDays)
		cycles.GET("/last-task-date", c.cycle.GetLastTaskDate)
		cycles.POST("/validate-extension", c.cycle.ValidateExtensionDate)
		cycles.GET("/stats", c.cycle.GetCycleStats)
	}

	cartas := authGroup.Group("/cartas/:id")
	{
		cartas.POST("/generate", c.generation.GenerateTasks)
		cartas.GET("/validate", c.generation.ValidateCarta)
		cartas.GET("/task-stats", c.generation.GetTaskStats)
	}

	collections := authGroup.Group("/collections")
	{
		collections.POST("/check", c.collection.CheckAll)
		collections.GET("/progress", c.collection.ProgressAll)
	}

	authGroup.GET("/progress", c.participant.GetProgress)
	authGroup.GET("/leaderboard", c.participant.GetLeaderboard)
}

// registerMentorRoutes covers operations reserved for mentors reviewing
// evidence or adjusting a running cycle. Admins pass the role check as well.
func (a *App) registerMentorRoutes(authGroup *gin.RouterGroup, c *controllers) {
	mentor := authGroup.Group("/")
	mentor.Use(middleware.RoleMiddleware(model.RoleMentor))
	{
		mentor.POST("/rewards/evidence", c.reward.AwardByEvidence)
		mentor.POST("/rewards/special-task", c.reward.AwardSpecialTask)
		mentor.POST("/participants/:id/perfect-day", c.reward.EvaluatePerfectDay)
		mentor.POST("/participants/:id/additional-tasks", c.generation.GenerateAdditionalTasks)
		mentor.GET("/participants/:id/cycle-stats", c.cycle.GetParticipantCycleStats)
	}
}
