package wire

import (
	"cinetheque/internal/adaptor"
	"cinetheque/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, log *zap.Logger) {
	// Public routes
	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)

	// Logout needs a signed-in user
	r.With(middleware.RequireUser(log)).Post("/logout", authHandler.Logout)
}
