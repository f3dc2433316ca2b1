package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"beach-cleanup-system/handlers"
	"beach-cleanup-system/metrics"
	"beach-cleanup-system/middleware"
	"beach-cleanup-system/models"
	"beach-cleanup-system/services"
	"beach-cleanup-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// TranslateError turns unique-index violations into gorm.ErrDuplicatedKey,
	// which the registration service relies on to resolve races.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Beach{},
		&models.Participation{},
		&models.BadgeType{},
		&models.UserBadge{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	metrics.Register()

	eventService := services.NewEventService(db)
	registrationService := services.NewRegistrationService(db)
	statsService := services.NewStatsService(db)
	userService := services.NewUserService(db)
	beachService := services.NewBeachService(db)
	badgeService := services.NewBadgeService(db)

	if err := badgeService.SeedBadgeCatalog(); err != nil {
		log.Fatal("failed to seed badge catalog:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- External cleanliness feed sync (optional) ---
	beachFeedURL := os.Getenv("BEACH_STATUS_URL")
	if beachFeedURL != "" {
		serviceToken := os.Getenv("CLEANUP_SERVICE_TOKEN")
		beachSyncWorker := workers.NewBeachSyncWorker(db, beachFeedURL, serviceToken)
		beachSyncWorker.Start(ctx)
	} else {
		log.Println("⚠️  BEACH_STATUS_URL not set — beach status sync disabled")
	}

	statsService.StartReconcileScheduler()

	handlers.SetupEventRoutes(app, eventService, registrationService)
	handlers.SetupStatsRoutes(app, statsService, badgeService)
	handlers.SetupBeachRoutes(app, beachService)
	handlers.SetupProfileRoutes(app, userService, statsService)

	// Prometheus on its own listener, away from the gateway-authed app
	metricsAddr := os.Getenv("METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9100"
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			log.Printf("Metrics listener error: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Printf("✅ Metrics exposed on %s/metrics", metricsAddr)
	log.Println("✅ Reconcile scheduler running (every 5m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
