package httpx

import (
	"context"
	"net/http"

	"libraryapi/internal/config"
	"libraryapi/internal/http/handlers"
	middlewarex "libraryapi/internal/http/middleware"
	"libraryapi/internal/query"
	"libraryapi/internal/services/library"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/cors"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config     config.Cfg
	Library    *library.Service
	Hypermedia *handlers.Hypermedia
}

// NewRouter creates the HTTP router. ctx bounds background work started by
// middleware.
func NewRouter(ctx context.Context, deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middlewarex.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: deps.Config.Sec.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Pagination", "Location"},
	}).Handler)
	r.Use(middlewarex.RateLimit(ctx, deps.Config.Sec.RateLimitPerMin))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"env":     deps.Config.App.Env,
			"message": "Library API running",
		})
	})

	authorDefaults := query.ParameterDefaults{
		OrderBy:     "Name",
		PageSize:    deps.Config.Paging.DefaultSize,
		MaxPageSize: deps.Config.Paging.MaxSize,
	}
	bookDefaults := authorDefaults
	bookDefaults.OrderBy = "Title"

	svc, hm := deps.Library, deps.Hypermedia

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarex.NegotiateMediaType)

		r.Get("/", handlers.GetRoot(hm))

		r.Route("/authors", func(r chi.Router) {
			r.Get("/", handlers.ListAuthors(svc, hm, authorDefaults))
			r.Post("/", handlers.CreateAuthor(svc, hm))

			r.Route("/{authorId}", func(r chi.Router) {
				r.Get("/", handlers.GetAuthor(svc, hm))
				r.Post("/", handlers.BlockAuthorCreation(svc))
				r.Delete("/", handlers.DeleteAuthor(svc))

				r.Get("/books", handlers.ListBooks(svc, hm, bookDefaults))
				r.Post("/books", handlers.CreateBook(svc, hm))
				r.Get("/books/{bookId}", handlers.GetBook(svc, hm))
				r.Put("/books/{bookId}", handlers.UpdateBook(svc))
				r.Patch("/books/{bookId}", handlers.PatchBook(svc))
				r.Delete("/books/{bookId}", handlers.DeleteBook(svc))
			})
		})

		r.Post("/authorcollections", handlers.CreateAuthorCollection(svc, hm))
		r.Get("/authorcollections/{ids}", handlers.GetAuthorCollection(svc))
	})

	return r
}
