// Package ui exposes the score catalogue over HTTP. It translates dispatch,
// reload and listing calls into routes and maps the engine's error taxonomy
// onto status codes; the engine itself knows nothing about HTTP.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/danielxmed/nobra-calculator/app"
	"github.com/danielxmed/nobra-calculator/internal"
)

// App represents the HTTP API application
type App struct {
	router   *chi.Mux
	scores   *app.ScoreService
	registry *app.Registry
	logger   *internal.Logger
}

// NewApp creates a new API application over the score service and registry
func NewApp(scores *app.ScoreService, registry *app.Registry, logger *internal.Logger) *App {
	a := &App{
		router:   chi.NewRouter(),
		scores:   scores,
		registry: registry,
		logger:   logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(requestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Get("/api/scores", a.handleListScores)
	a.router.Get("/api/scores/{id}", a.handleGetScore)
	a.router.Get("/api/scores/{id}/docs", a.handleScoreDocs)
	a.router.Post("/api/scores/{id}/calculate", a.handleCalculate)

	// Deliberately undocumented in the public route listing: reload is an
	// operator action, not a caller-facing tool.
	a.router.Post("/api/reload", a.handleReload)
}

// Router returns the configured HTTP handler
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(port string) error {
	a.logger.Info("Starting nobra-calculator API server on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}
