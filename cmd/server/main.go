package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"memberhub/internal/adapters/http/middleware"
	"memberhub/internal/adapters/http/routes"
	"memberhub/internal/adapters/persistence/models"
	"memberhub/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "memberhub/docs" // Swagger docs
)

// @title MemberHub API
// @version 1.0
// @description Membership management backend for the MemberHub admin console and mobile app
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@memberhub.app

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.memberhub.app
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default zones
	if err := config.SeedDefaultData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed default data: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MemberHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    cfg.Upload.MaxSizeBytes + 1024*1024,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
