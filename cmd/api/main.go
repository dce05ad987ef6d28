package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dms/docs"
	"dms/internal/config"
	"dms/internal/database"
	"dms/internal/database/migration"
	handlers "dms/internal/http/handler"
	"dms/internal/http/middleware"
	"dms/internal/otel"
	"dms/internal/reconcile"
	"dms/internal/repository/postgres"
	"dms/internal/service"
	"dms/internal/storage"
)

// @title Document Management API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := time.UTC
	if tz := os.Getenv("TZ"); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	ctx := context.Background()

	// Tracing is best-effort: misconfiguration degrades to noop.
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Durable queue for blobs whose deletion failed
	queue := reconcile.NewFileQueue(cfg.ReconcileQueuePath)

	// Initialize repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	fileRepo := postgres.NewFilePostgres(db)
	docSvc := service.NewDocumentService(objStore, docRepo, fileRepo, queue)
	fileSvc := service.NewFileService(objStore, docRepo, fileRepo, queue, service.FileServiceConfig{
		MaxUploadBytes:    cfg.Upload.MaxBytes,
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		UsePresignedURLs:  cfg.Download.UsePresignedURLs,
		PresignExpiry:     time.Duration(cfg.Download.PresignExpiryMin) * time.Minute,
	})

	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(otelfiber.Middleware())

	// CORS policy applies to the API surface only
	app.Use("/api", cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
	}))

	// Request counter plus the /metrics scrape endpoint
	registry := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, docSvc, fileSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
