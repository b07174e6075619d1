package routes

import (
	"memberhub/internal/adapters/http/handlers"
	"memberhub/internal/adapters/http/middleware"
	"memberhub/internal/adapters/persistence/repositories"
	"memberhub/internal/config"
	"memberhub/internal/core/services"
	"memberhub/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	zoneRepo := repositories.NewZoneRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize services
	otpService := services.NewOTPService()
	authService := services.NewAuthService(memberRepo, otpService, cfg)
	memberService := services.NewMemberService(db, memberRepo, paymentRepo, eventRepo)
	eventService := services.NewEventService(eventRepo, memberRepo, paymentRepo)
	zoneService := services.NewZoneService(zoneRepo)
	dashboardService := services.NewDashboardService(db, zoneRepo)
	notificationService := services.NewNotificationService(notificationRepo, memberRepo, eventRepo)

	saver := upload.NewSaver(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService, saver)
	eventHandler := handlers.NewEventHandler(eventService, saver)
	zoneHandler := handlers.NewZoneHandler(zoneService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	mobileHandler := handlers.NewMobileHandler(memberService, eventService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded images
	app.Static("/uploads", cfg.Upload.Dir)

	auth := middleware.AuthMiddleware(cfg, memberRepo)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Admin console routes (elevated members only)
	admin := apiV1.Group("/admin")
	admin.Use(auth)
	admin.Use(middleware.ElevatedOnly())
	setupAdminRoutes(admin, memberHandler, eventHandler, zoneHandler, dashboardHandler, notificationHandler)

	// Mobile routes
	mobile := apiV1.Group("/mobile")
	setupMobileRoutes(mobile, authHandler, mobileHandler, notificationHandler, auth)
}

// setupAdminRoutes configures the admin console routes
func setupAdminRoutes(
	router fiber.Router,
	memberHandler *handlers.MemberHandler,
	eventHandler *handlers.EventHandler,
	zoneHandler *handlers.ZoneHandler,
	dashboardHandler *handlers.DashboardHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	// Members
	router.Get("/members", memberHandler.List)
	router.Get("/members/:id", memberHandler.Get)
	router.Post("/members", memberHandler.Create)
	router.Put("/members/:id", memberHandler.Update)
	router.Delete("/members/:id", memberHandler.Disable)
	router.Post("/members/:id/image", memberHandler.UploadImage)

	// Events
	router.Get("/events", eventHandler.List)
	router.Get("/events/:id", eventHandler.Get)
	router.Post("/events", eventHandler.Create)
	router.Put("/events/:id", eventHandler.Update)
	router.Delete("/events/:id", eventHandler.Cancel)
	router.Post("/events/:id/image", eventHandler.UploadImage)
	router.Get("/events/:id/attendance", eventHandler.ListAttendance)
	router.Post("/events/:id/attendance", eventHandler.RecordAttendance)
	router.Get("/events/:id/payments", eventHandler.Payments)

	// Zones
	router.Get("/zones", zoneHandler.List)
	router.Post("/zones", zoneHandler.Create)
	router.Put("/zones/:id", zoneHandler.Update)

	// Dashboard
	router.Get("/dashboard/stats", dashboardHandler.Stats)
	router.Get("/dashboard/revenue", dashboardHandler.Revenue)

	// Notifications
	router.Post("/notifications/event-reminder/:id", notificationHandler.SendEventReminder)
	router.Post("/notifications/expiry-notice", notificationHandler.SendExpiryNotice)
	router.Post("/notifications/announcement", notificationHandler.SendAnnouncement)
}

// setupMobileRoutes configures the member-facing mobile routes
func setupMobileRoutes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	mobileHandler *handlers.MobileHandler,
	notificationHandler *handlers.NotificationHandler,
	auth fiber.Handler,
) {
	// Auth routes (public, rate limited)
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/send-otp", middleware.AuthRateLimiter(), authHandler.SendOTP)
	authRoutes.Post("/otp-login", middleware.AuthRateLimiter(), authHandler.OTPLogin)

	// Member routes (authenticated)
	router.Get("/home", auth, mobileHandler.Home)
	router.Get("/card", auth, mobileHandler.Card)
	router.Post("/membership/renew", auth, mobileHandler.Renew)
	router.Get("/payments", auth, mobileHandler.Payments)

	// Events
	router.Get("/events", auth, mobileHandler.Events)
	router.Get("/events/mine", auth, mobileHandler.MyEvents)
	router.Post("/events/:id/register", auth, mobileHandler.RegisterForEvent)

	// Notifications
	router.Get("/notifications", auth, notificationHandler.List)
	router.Get("/notifications/unread-count", auth, notificationHandler.UnreadCount)
	router.Put("/notifications/read-all", auth, notificationHandler.MarkAllRead)
	router.Put("/notifications/:id/read", auth, notificationHandler.MarkRead)
}
