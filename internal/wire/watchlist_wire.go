package wire

import (
	"cinetheque/internal/adaptor"
	"cinetheque/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWatchlist(r chi.Router, watchlistHandler *adaptor.WatchlistHandler, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(log))
		r.Get("/watchlist", watchlistHandler.Page)
		r.Post("/watchlist/clear", watchlistHandler.Clear)
		r.Post("/watchlist/{filmID}/remove", watchlistHandler.Remove)
	})
}
