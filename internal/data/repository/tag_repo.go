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

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	FindAll(ctx context.Context) ([]*entity.Tag, error)
	FindByNameFold(ctx context.Context, name string) (*entity.Tag, error)
	FindByFilmIDs(ctx context.Context, filmIDs []uuid.UUID) (map[uuid.UUID][]*entity.Tag, error)
}

type tagRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewTagRepository(db database.Queryer, log *zap.Logger) TagRepository {
	return &tagRepository{
		db:  db,
		log: log.With(zap.String("repository", "tag")),
	}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	query := `INSERT INTO tags (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, tag.ID, tag.Name, tag.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create tag",
			zap.Error(err),
			zap.String("name", tag.Name),
		)
		return fmt.Errorf("create tag %q: %w", tag.Name, err)
	}

	return nil
}

func (r *tagRepository) FindAll(ctx context.Context) ([]*entity.Tag, error) {
	query := `SELECT id, name, created_at FROM tags ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all tags", zap.Error(err))
		return nil, fmt.Errorf("find all tags: %w", err)
	}
	defer rows.Close()

	var tags []*entity.Tag
	for rows.Next() {
		var tag entity.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			r.log.Error("Failed to scan tag row", zap.Error(err))
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tag rows: %w", err)
	}

	return tags, nil
}

// FindByNameFold matches a tag name case-insensitively, so genre imports do
// not create "Drama" next to "drama".
func (r *tagRepository) FindByNameFold(ctx context.Context, name string) (*entity.Tag, error) {
	query := `SELECT id, name, created_at FROM tags WHERE LOWER(name) = LOWER($1) LIMIT 1`

	var tag entity.Tag
	err := r.db.QueryRow(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tag by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find tag by name %q: %w", name, err)
	}

	return &tag, nil
}

// FindByFilmIDs loads each film's tags in one query, ordered by tag name.
func (r *tagRepository) FindByFilmIDs(ctx context.Context, filmIDs []uuid.UUID) (map[uuid.UUID][]*entity.Tag, error) {
	tagsByFilm := make(map[uuid.UUID][]*entity.Tag, len(filmIDs))
	if len(filmIDs) == 0 {
		return tagsByFilm, nil
	}

	query := `
		SELECT ft.film_id, t.id, t.name, t.created_at
		FROM film_tags ft
		JOIN tags t ON t.id = ft.tag_id
		WHERE ft.film_id = ANY($1)
		ORDER BY t.name ASC
	`

	rows, err := r.db.Query(ctx, query, filmIDs)
	if err != nil {
		r.log.Error("Failed to find tags by film IDs", zap.Error(err), zap.Int("count", len(filmIDs)))
		return nil, fmt.Errorf("find tags by film IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filmID uuid.UUID
		var tag entity.Tag
		if err := rows.Scan(&filmID, &tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			r.log.Error("Failed to scan film tag row", zap.Error(err))
			return nil, fmt.Errorf("scan film tag row: %w", err)
		}
		tagsByFilm[filmID] = append(tagsByFilm[filmID], &tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate film tag rows: %w", err)
	}

	return tagsByFilm, nil
}
