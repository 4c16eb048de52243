package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cinetheque/internal/data/entity"
	"cinetheque/internal/data/repository"
	"cinetheque/internal/dto/request"
	"cinetheque/internal/dto/response"
	"cinetheque/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubmitReviewResult struct {
	FilmTitle            string
	Updated              bool
	RemovedFromWatchlist bool
}

type ToggleWatchlistResult struct {
	FilmTitle string
	Added     bool
}

type FilmService interface {
	ListFilms(ctx context.Context, req *request.ListFilmsRequest, userID uuid.UUID) (*response.FilmsPage, error)
	ListFilmCards(ctx context.Context, req *request.ListFilmsRequest, userID uuid.UUID) (*response.FilmCards, error)
	FilmDetail(ctx context.Context, filmID string, userID uuid.UUID) (*response.FilmDetailPage, error)
	// SubmitReview creates the user's review for a film, or updates it if
	// one already exists. A reviewed film is dropped from the watchlist.
	SubmitReview(ctx context.Context, userID uuid.UUID, filmID string, req *request.SubmitReviewRequest) (*SubmitReviewResult, error)
	ToggleWatchlist(ctx context.Context, userID uuid.UUID, filmID string) (*ToggleWatchlistResult, error)
}

type filmService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFilmService(repo *repository.Repository, log *zap.Logger) FilmService {
	return &filmService{
		repo: repo,
		log:  log.With(zap.String("service", "film")),
	}
}

func (s *filmService) ListFilms(ctx context.Context, req *request.ListFilmsRequest, userID uuid.UUID) (*response.FilmsPage, error) {
	cards, watchlisted, err := s.loadCards(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	tags, err := s.repo.Tag.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	// The full watchlist id set, not just the films the filters kept.
	watchlistIDs := make([]string, 0, len(watchlisted))
	for id := range watchlisted {
		watchlistIDs = append(watchlistIDs, id.String())
	}
	sort.Strings(watchlistIDs)

	return &response.FilmsPage{
		Films:         cards,
		Tags:          response.TagsToResponse(tags),
		SelectedQuery: req.Query,
		SelectedTags:  req.Tags,
		WatchlistIDs:  watchlistIDs,
	}, nil
}

func (s *filmService) ListFilmCards(ctx context.Context, req *request.ListFilmsRequest, userID uuid.UUID) (*response.FilmCards, error) {
	cards, _, err := s.loadCards(ctx, req, userID)
	if err != nil {
		return nil, err
	}

	return &response.FilmCards{
		Films:         cards,
		SelectedQuery: req.Query,
		SelectedTags:  req.Tags,
	}, nil
}

func (s *filmService) FilmDetail(ctx context.Context, filmID string, userID uuid.UUID) (*response.FilmDetailPage, error) {
	filmUUID, err := uuid.Parse(filmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID format %s: %w", filmID, err)
	}

	film, err := s.repo.Film.FindByID(ctx, filmUUID)
	if err != nil {
		return nil, fmt.Errorf("find film: %w", err)
	}
	if film == nil {
		return nil, fmt.Errorf("film %s not found", filmID)
	}

	tagsByFilm, err := s.repo.Tag.FindByFilmIDs(ctx, []uuid.UUID{filmUUID})
	if err != nil {
		return nil, fmt.Errorf("load film tags: %w", err)
	}

	reviews, err := s.repo.Review.FindByFilmID(ctx, filmUUID)
	if err != nil {
		return nil, fmt.Errorf("load film reviews: %w", err)
	}

	userIDs := make([]uuid.UUID, len(reviews))
	for i, review := range reviews {
		userIDs[i] = review.UserID
	}
	authors, err := s.repo.User.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load review authors: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	var userReview *response.ReviewResponse
	for i, review := range reviews {
		username := ""
		if author, ok := authors[review.UserID]; ok {
			username = author.Username
		}
		reviewResponses[i] = response.ReviewToResponse(review, username, film.Title)
		if userID != uuid.Nil && review.UserID == userID {
			r := reviewResponses[i]
			userReview = &r
		}
	}

	inWatchlist := false
	if userID != uuid.Nil {
		item, err := s.repo.Watchlist.FindByUserAndFilm(ctx, userID, filmUUID)
		if err != nil {
			return nil, fmt.Errorf("check watchlist: %w", err)
		}
		inWatchlist = item != nil
	}

	var avg *float64
	if len(reviews) > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		rounded := utils.Round1(float64(sum) / float64(len(reviews)))
		avg = &rounded
	}

	return &response.FilmDetailPage{
		Film:            response.FilmToSummary(film, tagsByFilm[filmUUID]),
		AvgRating:       avg,
		ReviewCount:     len(reviews),
		Reviews:         reviewResponses,
		UserReview:      userReview,
		FilmInWatchlist: inWatchlist,
	}, nil
}

func (s *filmService) SubmitReview(ctx context.Context, userID uuid.UUID, filmID string, req *request.SubmitReviewRequest) (*SubmitReviewResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filmUUID, err := uuid.Parse(filmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID format %s: %w", filmID, err)
	}

	film, err := s.repo.Film.FindByID(ctx, filmUUID)
	if err != nil {
		return nil, fmt.Errorf("find film: %w", err)
	}
	if film == nil {
		return nil, fmt.Errorf("film %s not found", filmID)
	}

	existing, err := s.repo.Review.FindByUserAndFilm(ctx, userID, filmUUID)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}

	comment := utils.NormalizeComment(req.Comment)
	updated := existing != nil

	if existing != nil {
		existing.Rating = req.Rating
		existing.Comment = comment
		if err := s.repo.Review.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update review: %w", err)
		}
	} else {
		now := time.Now()
		review := &entity.Review{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:  userID,
			FilmID:  filmUUID,
			Rating:  req.Rating,
			Comment: comment,
		}
		if err := s.repo.Review.Create(ctx, review); err != nil {
			return nil, fmt.Errorf("create review: %w", err)
		}
	}

	// A reviewed film has been seen, so it leaves the watchlist. Failure
	// here must not lose the review.
	removed, err := s.repo.Watchlist.Delete(ctx, userID, filmUUID)
	if err != nil {
		s.log.Warn("Failed to remove reviewed film from watchlist",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("film_id", filmID),
		)
		removed = false
	}

	s.log.Info("Review submitted",
		zap.String("user_id", userID.String()),
		zap.String("film_id", filmID),
		zap.Int("rating", req.Rating),
		zap.Bool("updated", updated),
	)

	return &SubmitReviewResult{
		FilmTitle:            film.Title,
		Updated:              updated,
		RemovedFromWatchlist: removed,
	}, nil
}

func (s *filmService) ToggleWatchlist(ctx context.Context, userID uuid.UUID, filmID string) (*ToggleWatchlistResult, error) {
	filmUUID, err := uuid.Parse(filmID)
	if err != nil {
		return nil, fmt.Errorf("invalid film ID format %s: %w", filmID, err)
	}

	film, err := s.repo.Film.FindByID(ctx, filmUUID)
	if err != nil {
		return nil, fmt.Errorf("find film: %w", err)
	}
	if film == nil {
		return nil, fmt.Errorf("film %s not found", filmID)
	}

	item, err := s.repo.Watchlist.FindByUserAndFilm(ctx, userID, filmUUID)
	if err != nil {
		return nil, fmt.Errorf("check watchlist: %w", err)
	}

	if item != nil {
		if _, err := s.repo.Watchlist.Delete(ctx, userID, filmUUID); err != nil {
			return nil, fmt.Errorf("remove from watchlist: %w", err)
		}
		return &ToggleWatchlistResult{FilmTitle: film.Title, Added: false}, nil
	}

	newItem := &entity.WatchlistItem{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID: userID,
		FilmID: filmUUID,
	}
	if err := s.repo.Watchlist.Create(ctx, newItem); err != nil {
		// Two rapid toggles can race on the unique constraint. If the
		// row exists now, the film is on the list either way.
		if check, checkErr := s.repo.Watchlist.FindByUserAndFilm(ctx, userID, filmUUID); checkErr == nil && check != nil {
			return &ToggleWatchlistResult{FilmTitle: film.Title, Added: true}, nil
		}
		return nil, fmt.Errorf("add to watchlist: %w", err)
	}

	return &ToggleWatchlistResult{FilmTitle: film.Title, Added: true}, nil
}

// loadCards runs the filtered film query and projects the cards. It also
// returns the user's complete watchlist id set, which is independent of the
// filters.
func (s *filmService) loadCards(ctx context.Context, req *request.ListFilmsRequest, userID uuid.UUID) ([]response.FilmCard, map[uuid.UUID]bool, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var search *string
	if req.Query != "" {
		search = &req.Query
	}

	films, err := s.repo.Film.FindAll(ctx, search, req.Tags)
	if err != nil {
		s.log.Error("Failed to list films", zap.Error(err))
		return nil, nil, fmt.Errorf("list films: %w", err)
	}

	filmIDs := make([]uuid.UUID, len(films))
	for i, film := range films {
		filmIDs[i] = film.ID
	}

	tagsByFilm, err := s.repo.Tag.FindByFilmIDs(ctx, filmIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load film tags: %w", err)
	}

	reviewsByFilm, err := s.repo.Review.FindByFilmIDs(ctx, filmIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("load film reviews: %w", err)
	}

	watchlisted := make(map[uuid.UUID]bool)
	if userID != uuid.Nil {
		items, err := s.repo.Watchlist.FindByUser(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("load watchlist: %w", err)
		}
		for _, item := range items {
			watchlisted[item.FilmID] = true
		}
	}

	cards := make([]response.FilmCard, len(films))
	for i, film := range films {
		cards[i] = buildFilmCard(film, tagsByFilm[film.ID], reviewsByFilm[film.ID], watchlisted[film.ID])
	}

	return cards, watchlisted, nil
}

// buildFilmCard projects a film with its tags and reviews into a card. The
// average rating is rounded to one decimal and nil when unreviewed.
func buildFilmCard(film *entity.Film, tags []*entity.Tag, reviews []*entity.Review, inWatchlist bool) response.FilmCard {
	card := response.FilmCard{
		Film:        response.FilmToSummary(film, tags),
		ReviewCount: len(reviews),
		InWatchlist: inWatchlist,
	}

	if len(reviews) > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		avg := utils.Round1(float64(sum) / float64(len(reviews)))
		card.AvgRating = &avg
	}

	return card
}
