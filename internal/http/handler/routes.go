package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"dms/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app. Routes
// are declared statically here so the full surface is visible in one place.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, fileSvc service.FileService) {
	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	api.Get("/documents", ListDocuments(docSvc))
	api.Post("/documents", CreateDocument(docSvc))
	api.Patch("/documents/:id", UpdateDocument(docSvc))
	api.Delete("/documents/:id", DeleteDocument(docSvc))

	api.Post("/documents/:id/files", UploadFile(fileSvc))
	api.Get("/documents/:id/files", ListFiles(fileSvc))
	api.Get("/documents/:id/files/:fileId", DownloadFile(fileSvc))
	api.Delete("/documents/:id/files/:fileId", DeleteFile(fileSvc))
}
