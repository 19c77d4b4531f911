package main

import (
	"net/http"

	"cinemahub/proj/internal/domain/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Get("/", app.listMovies)
			r.Get("/{id}", app.getMovie)
			r.Group(func(r chi.Router) {
				r.Use(app.requireRoles(models.RoleSuperAdmin))
				r.Post("/", app.createMovie)
				r.Patch("/{id}", app.editMovie)
				r.Delete("/{id}", app.deleteMovie)
			})
			r.Route("/{movieId}/reviews", func(r chi.Router) {
				r.Get("/", app.getMovieReviews)
				r.Group(func(r chi.Router) {
					r.Use(app.requireAuthenticatedUser)
					r.Post("/", app.createReview)
					r.Put("/", app.editReview)
					r.Delete("/", app.deleteReview)
				})
				r.Group(func(r chi.Router) {
					r.Use(app.requireRoles(models.RoleAdmin))
					r.Patch("/hide/{userId}", app.hideReview)
					r.Patch("/show/{userId}", app.showReview)
				})
			})
		})
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", app.listGenres)
			r.Get("/{id}", app.getGenre)
			r.Group(func(r chi.Router) {
				r.Use(app.requireRoles(models.RoleSuperAdmin))
				r.Post("/", app.createGenre)
				r.Delete("/{id}", app.deleteGenre)
			})
		})
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/signup", app.signup)
			r.Post("/login", app.login)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Get("/me", app.currentUser)
				r.Delete("/{userId}", app.deleteUser)
			})
			r.With(app.requireRoles(models.RoleAdmin)).Patch("/{userId}", app.editUser)
		})
	})
	return router
}
