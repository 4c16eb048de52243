package usecase

import (
	"cinetheque/internal/data/repository"
	"cinetheque/pkg/database"
	"cinetheque/pkg/tmdb"
	"cinetheque/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Film      FilmService
	Watchlist WatchlistService
	Profile   ProfileService
	TMDB      TMDBService
}

func NewService(repo *repository.Repository, db database.PgxIface, tmdbClient *tmdb.Client, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		Film:      NewFilmService(repo, log),
		Watchlist: NewWatchlistService(repo, log),
		Profile:   NewProfileService(repo, log),
		TMDB:      NewTMDBService(repo, db, tmdbClient, log),
	}
}
