package wire

import (
	"cinetheque/internal/adaptor"
	"cinetheque/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProfile(r chi.Router, profileHandler *adaptor.ProfileHandler, log *zap.Logger) {
	r.With(middleware.RequireUser(log)).Get("/profil", profileHandler.Page)
}
