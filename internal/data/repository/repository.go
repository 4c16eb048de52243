package repository

import (
	"cinetheque/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Session   SessionRepository
	Film      FilmRepository
	Tag       TagRepository
	FilmTag   FilmTagRepository
	Review    ReviewRepository
	Watchlist WatchlistRepository
}

func NewRepository(db database.Queryer, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Session:   NewSessionRepository(db, log),
		Film:      NewFilmRepository(db, log),
		Tag:       NewTagRepository(db, log),
		FilmTag:   NewFilmTagRepository(db, log),
		Review:    NewReviewRepository(db, log),
		Watchlist: NewWatchlistRepository(db, log),
	}
}
