package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cinetheque/internal/data/entity"
	"cinetheque/internal/data/repository"
	"cinetheque/internal/dto/request"
	"cinetheque/internal/dto/response"
	"cinetheque/pkg/database"
	"cinetheque/pkg/tmdb"
	"cinetheque/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxCatalogPages caps how deep the search and popular views paginate into
// the TMDB catalog.
const maxCatalogPages = 10

type TMDBService interface {
	Search(ctx context.Context, req *request.TMDBSearchRequest) (*response.TMDBSearchPage, error)
	Popular(ctx context.Context, page int) (*response.TMDBSearchPage, error)
	// Import fetches a movie's details from TMDB and creates the local
	// film with its tags, or reports the existing film when one with the
	// same title is already in the catalog.
	Import(ctx context.Context, tmdbID int) (*response.ImportResult, error)
}

type tmdbService struct {
	repo   *repository.Repository
	db     database.PgxIface
	client *tmdb.Client
	log    *zap.Logger
}

func NewTMDBService(repo *repository.Repository, db database.PgxIface, client *tmdb.Client, log *zap.Logger) TMDBService {
	return &tmdbService{
		repo:   repo,
		db:     db,
		client: client,
		log:    log.With(zap.String("service", "tmdb")),
	}
}

func (s *tmdbService) Search(ctx context.Context, req *request.TMDBSearchRequest) (*response.TMDBSearchPage, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	if req.Query == "" {
		return &response.TMDBSearchPage{
			Results:     []response.TMDBMovieCard{},
			CurrentPage: page,
		}, nil
	}

	result, err := s.client.SearchMovies(ctx, req.Query, page)
	if err != nil {
		s.log.Error("TMDB search failed", zap.Error(err), zap.String("query", req.Query))
		return nil, fmt.Errorf("search TMDB: %w", err)
	}

	cards, err := s.annotateResults(ctx, result.Results)
	if err != nil {
		return nil, err
	}

	return &response.TMDBSearchPage{
		Query:        req.Query,
		Results:      cards,
		TotalResults: result.TotalResults,
		CurrentPage:  page,
		TotalPages:   capPages(result.TotalPages),
	}, nil
}

func (s *tmdbService) Popular(ctx context.Context, page int) (*response.TMDBSearchPage, error) {
	if page < 1 {
		page = 1
	}

	result, err := s.client.GetPopularMovies(ctx, page)
	if err != nil {
		s.log.Error("TMDB popular fetch failed", zap.Error(err), zap.Int("page", page))
		return nil, fmt.Errorf("fetch popular movies: %w", err)
	}

	cards, err := s.annotateResults(ctx, result.Results)
	if err != nil {
		return nil, err
	}

	return &response.TMDBSearchPage{
		Results:      cards,
		TotalResults: result.TotalResults,
		CurrentPage:  page,
		TotalPages:   capPages(result.TotalPages),
		IsPopular:    true,
	}, nil
}

func (s *tmdbService) Import(ctx context.Context, tmdbID int) (*response.ImportResult, error) {
	details, err := s.client.GetMovieDetails(ctx, tmdbID)
	if err != nil {
		s.log.Error("TMDB details fetch failed", zap.Error(err), zap.Int("tmdb_id", tmdbID))
		return nil, fmt.Errorf("fetch movie details: %w", err)
	}

	data := tmdb.ExtractFilmData(details, s.client.ImageBaseURL())

	// Deduplication is by exact title, so re-importing a movie points the
	// user at the film already in the catalog.
	existing, err := s.repo.Film.FindByTitle(ctx, data.Title)
	if err != nil {
		return nil, fmt.Errorf("check existing film: %w", err)
	}
	if existing != nil {
		return &response.ImportResult{
			Success:       true,
			LocalID:       existing.ID.String(),
			Title:         existing.Title,
			Message:       fmt.Sprintf("%s is already in the catalog", existing.Title),
			AlreadyExists: true,
		}, nil
	}

	film, err := s.createFilm(ctx, tmdbID, data)
	if err != nil {
		return nil, err
	}

	s.log.Info("Film imported from TMDB",
		zap.Int("tmdb_id", tmdbID),
		zap.String("film_id", film.ID.String()),
		zap.String("title", film.Title),
	)

	return &response.ImportResult{
		Success: true,
		LocalID: film.ID.String(),
		Title:   film.Title,
		Message: fmt.Sprintf("%s added to the catalog", film.Title),
	}, nil
}

// createFilm writes the film, its tags, and the links in one transaction so
// a failure leaves no partial import behind.
func (s *tmdbService) createFilm(ctx context.Context, tmdbID int, data tmdb.FilmData) (*entity.Film, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	txRepo := repository.NewRepository(tx, s.log)

	externalID := strconv.Itoa(tmdbID)
	now := time.Now()
	film := &entity.Film{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ExternalID:     &externalID,
		Title:          data.Title,
		Overview:       data.Overview,
		ReleaseYear:    data.ReleaseYear,
		PosterURL:      data.PosterURL,
		BackdropURL:    data.BackdropURL,
		RuntimeMinutes: data.RuntimeMinutes,
		Director:       data.Director,
		Country:        data.Country,
	}

	if err := txRepo.Film.Create(ctx, film); err != nil {
		return nil, fmt.Errorf("create film: %w", err)
	}

	for _, genreName := range data.Genres {
		tag, err := s.ensureTag(ctx, txRepo, genreName)
		if err != nil {
			return nil, err
		}
		if err := txRepo.FilmTag.Link(ctx, film.ID, tag.ID); err != nil {
			return nil, fmt.Errorf("link tag %s: %w", genreName, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return film, nil
}

// ensureTag finds a tag by name, case-insensitively, creating it when
// missing.
func (s *tmdbService) ensureTag(ctx context.Context, txRepo *repository.Repository, name string) (*entity.Tag, error) {
	tag, err := txRepo.Tag.FindByNameFold(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find tag %s: %w", name, err)
	}
	if tag != nil {
		return tag, nil
	}

	tag = &entity.Tag{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: name,
	}
	if err := txRepo.Tag.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag %s: %w", name, err)
	}

	return tag, nil
}

func (s *tmdbService) annotateResults(ctx context.Context, movies []tmdb.Movie) ([]response.TMDBMovieCard, error) {
	cards := make([]response.TMDBMovieCard, len(movies))
	for i, movie := range movies {
		card := response.TMDBMovieCard{
			DisplayMovie: tmdb.FormatForDisplay(movie, s.client.ImageBaseURL()),
		}

		local, err := s.repo.Film.FindByTitle(ctx, movie.Title)
		if err != nil {
			return nil, fmt.Errorf("check local film: %w", err)
		}
		if local != nil {
			card.AlreadyExists = true
			localID := local.ID.String()
			card.LocalID = &localID
		}

		cards[i] = card
	}

	return cards, nil
}

func capPages(totalPages int) int {
	if totalPages > maxCatalogPages {
		return maxCatalogPages
	}
	return totalPages
}
