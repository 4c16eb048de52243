package repository

import (
	"context"
	"fmt"

	"cinetheque/internal/data/entity"
	"cinetheque/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WatchlistRepository interface {
	Create(ctx context.Context, item *entity.WatchlistItem) error
	FindByUserAndFilm(ctx context.Context, userID, filmID uuid.UUID) (*entity.WatchlistItem, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WatchlistItem, error)
	Delete(ctx context.Context, userID, filmID uuid.UUID) (bool, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type watchlistRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewWatchlistRepository(db database.Queryer, log *zap.Logger) WatchlistRepository {
	return &watchlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "watchlist")),
	}
}

func (r *watchlistRepository) Create(ctx context.Context, item *entity.WatchlistItem) error {
	query := `
		INSERT INTO watchlist_items (id, user_id, film_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.FilmID,
		item.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create watchlist item",
			zap.Error(err),
			zap.String("user_id", item.UserID.String()),
			zap.String("film_id", item.FilmID.String()),
		)
		return fmt.Errorf("create watchlist item for film %s by user %s: %w",
			item.FilmID.String(), item.UserID.String(), err)
	}

	return nil
}

func (r *watchlistRepository) FindByUserAndFilm(ctx context.Context, userID, filmID uuid.UUID) (*entity.WatchlistItem, error) {
	query := `
		SELECT id, user_id, film_id, created_at
		FROM watchlist_items
		WHERE user_id = $1 AND film_id = $2
		LIMIT 1
	`

	var item entity.WatchlistItem
	err := r.db.QueryRow(ctx, query, userID, filmID).Scan(
		&item.ID,
		&item.UserID,
		&item.FilmID,
		&item.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find watchlist item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("film_id", filmID.String()),
		)
		return nil, fmt.Errorf("find watchlist item for user %s and film %s: %w",
			userID.String(), filmID.String(), err)
	}

	return &item, nil
}

// FindByUser returns the user's watchlist rows, most recently added first.
func (r *watchlistRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WatchlistItem, error) {
	query := `
		SELECT id, user_id, film_id, created_at
		FROM watchlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find watchlist by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find watchlist by user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var items []*entity.WatchlistItem
	for rows.Next() {
		var item entity.WatchlistItem
		err := rows.Scan(&item.ID, &item.UserID, &item.FilmID, &item.CreatedAt)
		if err != nil {
			r.log.Error("Failed to scan watchlist row", zap.Error(err))
			return nil, fmt.Errorf("scan watchlist row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist rows: %w", err)
	}

	return items, nil
}

// Delete removes the (user, film) row if present and reports whether a row
// was actually deleted.
func (r *watchlistRepository) Delete(ctx context.Context, userID, filmID uuid.UUID) (bool, error) {
	query := `DELETE FROM watchlist_items WHERE user_id = $1 AND film_id = $2`

	result, err := r.db.Exec(ctx, query, userID, filmID)
	if err != nil {
		r.log.Error("Failed to delete watchlist item",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("film_id", filmID.String()),
		)
		return false, fmt.Errorf("delete watchlist item for user %s and film %s: %w",
			userID.String(), filmID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *watchlistRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM watchlist_items WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to clear watchlist",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("clear watchlist for user %s: %w", userID.String(), err)
	}

	deleted := result.RowsAffected()
	r.log.Info("Watchlist cleared",
		zap.String("user_id", userID.String()),
		zap.Int64("deleted", deleted),
	)

	return deleted, nil
}
