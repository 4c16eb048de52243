package wire

import (
	"fmt"
	"net/http"

	"cinetheque/internal/adaptor"
	"cinetheque/internal/data/repository"
	"cinetheque/internal/usecase"
	"cinetheque/pkg/database"
	"cinetheque/pkg/middleware"
	"cinetheque/pkg/tmdb"
	"cinetheque/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies.
func Wiring(
	repo *repository.Repository,
	db database.PgxIface,
	tmdbClient *tmdb.Client,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	flash := utils.NewFlashStore(config.Session.SecretKey, "cinetheque_flash")
	service := usecase.NewService(repo, db, tmdbClient, config, logger)
	handler := adaptor.NewHandler(service, flash, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Session(repo.Session, repo.User, config.Session.CookieName, logger))

	wireAuth(r, handler.Auth, logger)
	wireFilm(r, handler.Film, logger)
	wireWatchlist(r, handler.Watchlist, logger)
	wireProfile(r, handler.Profile, logger)
	wireTMDB(r, handler.TMDB, logger)

	// The root is the catalog
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.Redirect(w, r, "/films")
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","app":%q}`, config.App.Name)
	})

	return r
}
