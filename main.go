package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"frontline-rating-server/config"
	"frontline-rating-server/database"
	"frontline-rating-server/jobs"
	"frontline-rating-server/middleware"
	"frontline-rating-server/routes"
	"frontline-rating-server/services"
	ws "frontline-rating-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database (runs migrations)
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS for the rating frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.App.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Notification hub for realtime dashboard pushes
	notificationHub := ws.NewHub()
	go notificationHub.Run()
	services.SetNotificationHub(notificationHub)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if sqlDB, err := database.GetDB().DB(); err != nil || sqlDB.Ping() != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":          status,
			"message":         "Frontline Rating Server is running",
			"connected_users": notificationHub.ConnectedUsers(),
			"time":            time.Now().UTC(),
		})
	})

	router.GET("/api/v1/ws", middleware.WebSocketAuthMiddleware(), func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ws.ServeWebSocket(notificationHub, c.Writer, c.Request, user.ID)
	})

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes with strict rate limiting against credential probing
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Public routes used by the customer rating page
		publicRoutes := api.Group("")
		publicRoutes.Use(middleware.SubmissionRateLimitMiddleware())
		routes.RegisterRatingRoutes(publicRoutes)
		routes.RegisterAgentRoutes(api)
		routes.RegisterDepartmentRoutes(api)

		// Authenticated staff routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterProtectedRatingRoutes(protected)
			routes.RegisterComplaintRoutes(protected)
			routes.RegisterDashboardRoutes(protected)
			routes.RegisterNotificationRoutes(protected)
			routes.RegisterProfileRoutes(protected)
			routes.RegisterQuestionRoutes(protected)
			routes.RegisterUserRoutes(protected)
			routes.RegisterAdminDepartmentRoutes(protected)
			routes.RegisterReportRoutes(protected)
		}
	}

	// Background jobs
	cleanupJob := jobs.NewCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("🚀 Frontline Rating Server listening on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
