package repository

import (
	"context"
	"fmt"
	"time"

	"cinetheque/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FilmTagRepository interface {
	Link(ctx context.Context, filmID, tagID uuid.UUID) error
}

type filmTagRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewFilmTagRepository(db database.Queryer, log *zap.Logger) FilmTagRepository {
	return &filmTagRepository{
		db:  db,
		log: log.With(zap.String("repository", "film_tag")),
	}
}

func (r *filmTagRepository) Link(ctx context.Context, filmID, tagID uuid.UUID) error {
	query := `
		INSERT INTO film_tags (film_id, tag_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (film_id, tag_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, filmID, tagID, time.Now())
	if err != nil {
		r.log.Error("Failed to link film and tag",
			zap.Error(err),
			zap.String("film_id", filmID.String()),
			zap.String("tag_id", tagID.String()),
		)
		return fmt.Errorf("link film %s to tag %s: %w", filmID.String(), tagID.String(), err)
	}

	return nil
}
