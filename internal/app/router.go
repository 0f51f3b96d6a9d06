package app

import (
	"net/http"
	"time"

	"github.com/egyakin/egyakin-api/internal/config"
	"github.com/egyakin/egyakin-api/internal/handler"
	"github.com/egyakin/egyakin-api/internal/middleware"
	"github.com/egyakin/egyakin-api/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth         *handler.AuthHandler
	Notification *handler.NotificationHandler
	Device       *handler.DeviceHandler
	Patient      *handler.PatientHandler
	Feed         *handler.FeedHandler
	Group        *handler.GroupHandler
	Consultation *handler.ConsultationHandler
	Syndicate    *handler.SyndicateHandler
	Export       *handler.ExportHandler
}

// SetupRouter builds the gin engine with all routes and middleware
func SetupRouter(cfg *config.Config, h Handlers, jwtManager *auth.JWTManager, rdb *redis.Client, isAdmin func(uuid.UUID) bool) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Swagger configuration
	// Serve swagger.json at /docs/swagger.json to avoid conflict with /swagger/* wildcard
	router.StaticFile("/docs/swagger.json", "./docs/swagger.json")
	url := ginSwagger.URL("/docs/swagger.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))

	// Global middleware
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "egyakin-api",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api/v1")
	{
		// Auth routes (public)
		api.POST("/auth/login", h.Auth.Login)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtManager, rdb))
		{
			protected.POST("/auth/logout", h.Auth.Logout)

			// Notifications
			protected.GET("/notifications", h.Notification.List)
			protected.GET("/notifications/unread-count", h.Notification.UnreadCount)
			protected.PUT("/notifications/read-all", h.Notification.MarkAllRead)
			protected.PUT("/notifications/:id/read", h.Notification.MarkRead)

			// Devices
			protected.POST("/devices", h.Device.Register)
			protected.GET("/devices", h.Device.List)

			// Patients
			protected.POST("/patients", h.Patient.Create)

			// Feed
			protected.POST("/posts", h.Feed.CreatePost)

			// Groups
			protected.POST("/groups", h.Group.Create)
			protected.DELETE("/groups/:id", h.Group.Delete)
			protected.POST("/groups/:id/invitations", h.Group.Invite)
			protected.POST("/groups/:id/join-requests", h.Group.RequestJoin)
			protected.PUT("/invitations/:id/accept", h.Group.AcceptInvitation)

			// Consultations
			protected.POST("/consultations", h.Consultation.Create)

			// Exports
			protected.POST("/exports/notifications", h.Export.EnqueueNotificationExport)
			protected.GET("/exports/:id", h.Export.Progress)

			// Syndicate card review (admin only)
			admin := protected.Group("")
			admin.Use(middleware.AdminMiddleware(isAdmin))
			{
				admin.PUT("/doctors/:id/syndicate-card", h.Syndicate.Decide)
			}
		}
	}

	return router
}
