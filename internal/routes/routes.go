package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"strokewatch-server/internal/config"
	"strokewatch-server/internal/handlers"
	"strokewatch-server/internal/middleware"
	"strokewatch-server/internal/models"
	"strokewatch-server/internal/services"
	"strokewatch-server/internal/store"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, s store.Store, cfg *config.Config, log *zap.Logger) {
	// Initialize services and handlers
	userService := services.NewUserService(s, log)
	healthService := services.NewHealthService(s, log)
	monitoringService := services.NewMonitoringService(s, log)
	memoService := services.NewMemoService(s, log)

	authHandler := handlers.NewAuthHandler(userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	healthHandler := handlers.NewHealthRecordHandler(healthService)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)
	memoHandler := handlers.NewMemoHandler(memoService)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		userRoutes := private.Group("/users")
		{
			userRoutes.GET("/me", authHandler.GetProfile)
			userRoutes.PUT("/me", authHandler.UpdateProfile)

			// Static health profile, patients only
			userRoutes.GET("/me/health-info", middleware.RoleAuthMiddleware(models.RolePatient), userHandler.GetHealthInfo)
			userRoutes.PUT("/me/health-info", middleware.RoleAuthMiddleware(models.RolePatient), userHandler.UpdateHealthInfo)
		}

		// Vitals time series
		healthRoutes := private.Group("/health")
		{
			healthRoutes.POST("/records", middleware.RoleAuthMiddleware(models.RolePatient), healthHandler.CreateRecord)
			healthRoutes.GET("/records", healthHandler.ListRecords)
			healthRoutes.GET("/records/latest", healthHandler.LatestRecord)
			healthRoutes.DELETE("/records/:id", healthHandler.DeleteRecord)

			// Monitor access; relation check happens in the service
			healthRoutes.GET("/patients/:patientId/records", healthHandler.MonitoredRecords)
			healthRoutes.GET("/patients/:patientId/records/latest", healthHandler.MonitoredLatest)
		}

		// Consent workflow
		monitoringRoutes := private.Group("/monitoring")
		{
			monitoringRoutes.POST("/requests",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleCaregiver),
				monitoringHandler.CreateRequest)
			monitoringRoutes.GET("/requests/pending", monitoringHandler.ListPending)
			monitoringRoutes.GET("/requests/sent", monitoringHandler.ListSent)
			monitoringRoutes.PATCH("/requests/:id", monitoringHandler.ResolveRequest) // Patient decision in handler/service
			monitoringRoutes.DELETE("/requests/:id", monitoringHandler.CancelRequest)
			monitoringRoutes.GET("/relations", monitoringHandler.ListRelations)
			monitoringRoutes.GET("/patients", monitoringHandler.ListMonitoredPatients)
			monitoringRoutes.DELETE("/relations/:id", monitoringHandler.RevokeRelation)
		}

		// Doctor memos
		memoRoutes := private.Group("/memos")
		{
			memoRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), memoHandler.CreateMemo)
			memoRoutes.GET("", memoHandler.ListMemos)
			memoRoutes.GET("/:id", memoHandler.GetMemo)
			memoRoutes.DELETE("/:id", memoHandler.DeleteMemo)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
