package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pagemark/internal/handlers"
	"pagemark/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Highlights  service.HighlightService
	Definitions service.DefinitionService
	Pages       service.PageService
	Tabs        handlers.TabRelay
	Hub         http.Handler // websocket endpoint for page contexts
	Store       handlers.Pinger
	// VectorStore is nil when semantic search is disabled.
	VectorStore    handlers.CollectionChecker
	CollectionName string
	IndexHTML      string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)

	highlightsHandler := handlers.NewHighlightsHandler(deps.Highlights)
	defineHandler := handlers.NewDefineHandler(deps.Definitions)
	pagesHandler := handlers.NewPagesHandler(deps.Pages)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.VectorStore, deps.CollectionName)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/highlights", func(r chi.Router) {
			r.Get("/", highlightsHandler.List)
			r.Delete("/", highlightsHandler.Clear)
			r.Get("/export", highlightsHandler.Export)
			r.Get("/similar", highlightsHandler.Similar)
			r.Delete("/{id}", highlightsHandler.Delete)
		})
		r.Put("/settings/api-key", highlightsHandler.SetAPIKey)
		r.Method(http.MethodPost, "/define", defineHandler)

		r.Route("/pages", func(r chi.Router) {
			r.Post("/restore", pagesHandler.Restore)
			r.Post("/capture", pagesHandler.Capture)
			r.Post("/remove", pagesHandler.Remove)
		})

		if deps.Tabs != nil {
			tabsHandler := handlers.NewTabsHandler(deps.Tabs)
			r.Get("/tabs", tabsHandler.List)
			r.Post("/tabs/active/definition", tabsHandler.ShowDefinition)
		}

		r.Method(http.MethodGet, "/health", healthHandler)
	})

	if deps.Hub != nil {
		r.Method(http.MethodGet, "/ws", deps.Hub)
	}

	// Serve the management page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
