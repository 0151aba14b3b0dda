package api

import (
	"net/http"

	"github.com/bcnelson/netinventory/internal/api/handler"
	"github.com/bcnelson/netinventory/internal/api/middleware"
	"github.com/bcnelson/netinventory/internal/config"
	"github.com/bcnelson/netinventory/internal/export"
	"github.com/bcnelson/netinventory/internal/storage"
	"github.com/bcnelson/netinventory/internal/version"
	"github.com/bcnelson/netinventory/internal/web"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(store storage.Storage, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)

	// Set before mounting so the web subrouter inherits them.
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// Health check and version (no auth required)
	r.Get("/health", handler.Health)
	r.Get("/version", handler.Version(cfg.App.Mode))

	equipmentHandler := handler.NewEquipmentHandler(store)
	exportHandler := handler.NewExportHandler(export.New(store))

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentType)

		// Reads are public
		r.Get("/equipements", equipmentHandler.List)
		r.Get("/equipements/{id:[0-9]+}", equipmentHandler.Get)
		r.Get("/export", exportHandler.Export)

		// Mutations require the API key
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKey(cfg.Auth.APIKey))

			r.Post("/equipements", equipmentHandler.Create)
			r.Put("/equipements/{id:[0-9]+}", equipmentHandler.Update)
			r.Delete("/equipements/{id:[0-9]+}", equipmentHandler.Delete)
		})
	})

	// Mount web UI (serves HTML)
	webRouter := web.NewRouter(store, version.Get(cfg.App.Mode), cfg.App.IsDemo())
	r.Mount("/", webRouter)

	return r
}
