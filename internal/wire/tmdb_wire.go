package wire

import (
	"time"

	"cinetheque/internal/adaptor"
	"cinetheque/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

func wireTMDB(r chi.Router, tmdbHandler *adaptor.TMDBHandler, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(log))
		// Keep the upstream API happy even if a user hammers search
		r.Use(httprate.LimitByIP(30, time.Minute))

		r.Get("/tmdb/search", tmdbHandler.Search)
		r.Get("/tmdb/popular", tmdbHandler.Popular)
		r.Post("/tmdb/import/{tmdbID}", tmdbHandler.Import)
	})
}
