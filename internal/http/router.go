package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/MinesMe/ainotea/internal/auth"
	"github.com/MinesMe/ainotea/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Auth    *handlers.AuthHandler
	Notes   *handlers.NotesHandler
	Folders *handlers.FoldersHandler
	Search  *handlers.SearchHandler
	Health  *handlers.HealthHandler
	Issuer  *auth.TokenIssuer
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         3600,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Method(http.MethodGet, "/health", deps.Health)
		r.Post("/auth/register", deps.Auth.Register)

		// Routes requiring a bearer token
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.Issuer))

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", deps.Notes.Create)
				r.Get("/", deps.Notes.List)
				r.Get("/{id}", deps.Notes.Get)
				r.Post("/{id}/blocks", deps.Notes.AppendBlock)
				r.Patch("/{id}/folder", deps.Notes.Move)
				r.Post("/{id}/reindex", deps.Notes.Reindex)
				r.Delete("/{id}", deps.Notes.Delete)
			})

			r.Route("/folders", func(r chi.Router) {
				r.Post("/", deps.Folders.Create)
				r.Get("/", deps.Folders.List)
				r.Patch("/{id}", deps.Folders.Rename)
				r.Delete("/{id}", deps.Folders.Delete)
			})

			r.Method(http.MethodGet, "/search", deps.Search)
		})
	})

	return r
}
