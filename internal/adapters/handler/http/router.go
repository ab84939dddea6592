package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

func NewHandler(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	bookmarkHandler *BookmarkHandler,
	tokens ports.TokenIssuer,
	logger logging.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/signin", authHandler.SignIn)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireBearer(tokens, logger))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", userHandler.GetMe)
			r.Patch("/", userHandler.Edit)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", bookmarkHandler.List)
			r.Post("/", bookmarkHandler.Create)
			r.Get("/{id}", bookmarkHandler.Get)
			r.Patch("/{id}", bookmarkHandler.Edit)
			r.Delete("/{id}", bookmarkHandler.Delete)
		})
	})

	return r
}
