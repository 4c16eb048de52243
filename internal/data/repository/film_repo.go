package repository

import (
	"context"
	"fmt"
	"strings"

	"cinetheque/internal/data/entity"
	"cinetheque/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FilmRepository interface {
	Create(ctx context.Context, film *entity.Film) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Film, error)
	FindByTitle(ctx context.Context, title string) (*entity.Film, error)
	FindAll(ctx context.Context, search *string, tagNames []string) ([]*entity.Film, error)
}

type filmRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewFilmRepository(db database.Queryer, log *zap.Logger) FilmRepository {
	return &filmRepository{
		db:  db,
		log: log.With(zap.String("repository", "film")),
	}
}

const filmColumns = `id, external_id, title, overview, release_year, poster_url,
		       backdrop_url, runtime_minutes, director, country, created_at, updated_at`

func scanFilm(row pgx.Row) (*entity.Film, error) {
	var film entity.Film
	err := row.Scan(
		&film.ID,
		&film.ExternalID,
		&film.Title,
		&film.Overview,
		&film.ReleaseYear,
		&film.PosterURL,
		&film.BackdropURL,
		&film.RuntimeMinutes,
		&film.Director,
		&film.Country,
		&film.CreatedAt,
		&film.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &film, nil
}

func (r *filmRepository) Create(ctx context.Context, film *entity.Film) error {
	query := `
		INSERT INTO films (id, external_id, title, overview, release_year, poster_url,
		                  backdrop_url, runtime_minutes, director, country,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		film.ID,
		film.ExternalID,
		film.Title,
		film.Overview,
		film.ReleaseYear,
		film.PosterURL,
		film.BackdropURL,
		film.RuntimeMinutes,
		film.Director,
		film.Country,
		film.CreatedAt,
		film.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create film",
			zap.Error(err),
			zap.String("title", film.Title),
		)
		return fmt.Errorf("create film %q: %w", film.Title, err)
	}

	return nil
}

func (r *filmRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE id = $1`

	film, err := scanFilm(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find film by ID",
			zap.Error(err),
			zap.String("film_id", id.String()),
		)
		return nil, fmt.Errorf("find film by ID %s: %w", id.String(), err)
	}

	return film, nil
}

func (r *filmRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Film, error) {
	films := make(map[uuid.UUID]*entity.Film, len(ids))
	if len(ids) == 0 {
		return films, nil
	}

	query := `SELECT ` + filmColumns + ` FROM films WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find films by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find films by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			r.log.Error("Failed to scan film row", zap.Error(err))
			return nil, fmt.Errorf("scan film row: %w", err)
		}
		films[film.ID] = film
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate film rows: %w", err)
	}

	return films, nil
}

// FindByTitle matches the exact title string. The TMDB import uses this as
// its duplicate check.
func (r *filmRepository) FindByTitle(ctx context.Context, title string) (*entity.Film, error) {
	query := `SELECT ` + filmColumns + ` FROM films WHERE title = $1 LIMIT 1`

	film, err := scanFilm(r.db.QueryRow(ctx, query, title))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find film by title",
			zap.Error(err),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("find film by title %q: %w", title, err)
	}

	return film, nil
}

// FindAll lists films ordered by title. An optional search matches title or
// overview case-insensitively; tag names restrict to films carrying at least
// one of them, deduplicated.
func (r *filmRepository) FindAll(ctx context.Context, search *string, tagNames []string) ([]*entity.Film, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT DISTINCT f.id, f.external_id, f.title, f.overview, f.release_year,
		       f.poster_url, f.backdrop_url, f.runtime_minutes, f.director, f.country,
		       f.created_at, f.updated_at
		FROM films f`)

	args := []interface{}{}
	argCount := 1
	conditions := []string{}

	if len(tagNames) > 0 {
		queryBuilder.WriteString(`
		JOIN film_tags ft ON ft.film_id = f.id
		JOIN tags t ON t.id = ft.tag_id`)
		conditions = append(conditions, fmt.Sprintf("t.name = ANY($%d)", argCount))
		args = append(args, tagNames)
		argCount++
	}

	if search != nil && *search != "" {
		conditions = append(conditions,
			fmt.Sprintf("(f.title ILIKE $%d OR f.overview ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+*search+"%")
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString("\n\t\tWHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString("\n\t\tORDER BY f.title ASC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find films",
			zap.Error(err),
			zap.Stringp("search", search),
			zap.Strings("tags", tagNames),
		)
		return nil, fmt.Errorf("find films: %w", err)
	}
	defer rows.Close()

	var films []*entity.Film
	for rows.Next() {
		film, err := scanFilm(rows)
		if err != nil {
			r.log.Error("Failed to scan film row", zap.Error(err))
			return nil, fmt.Errorf("scan film row: %w", err)
		}
		films = append(films, film)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate film rows: %w", err)
	}

	r.log.Debug("Films found",
		zap.Int("count", len(films)),
		zap.Stringp("search", search),
		zap.Strings("tags", tagNames),
	)

	return films, nil
}
