package wire

import (
	"cinetheque/internal/adaptor"
	"cinetheque/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFilm(r chi.Router, filmHandler *adaptor.FilmHandler, log *zap.Logger) {
	// The catalog and film pages are public; anonymous visitors just see
	// no watchlist or review-form state.
	r.Get("/films", filmHandler.List)
	r.Get("/films/partial", filmHandler.Partial)
	r.Get("/films/{filmID}", filmHandler.Detail)

	// Writing requires a signed-in user
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(log))
		r.Post("/films/{filmID}/reviews", filmHandler.SubmitReview)
		r.Post("/films/{filmID}/watchlist", filmHandler.ToggleWatchlist)
	})
}
