package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cinetheque/internal/data/entity"
	"cinetheque/internal/data/repository"
	"cinetheque/internal/dto/request"
	"cinetheque/internal/dto/response"
	"cinetheque/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SortByDate  = "date"
	SortByTitle = "title"
	SortByYear  = "year"
	SortByGenre = "genre"
)

type WatchlistService interface {
	// FetchWatchlist returns the user's films with tags, most recently
	// added first. A nil user yields an empty list.
	FetchWatchlist(ctx context.Context, userID uuid.UUID) ([]response.FilmSummary, error)
	Page(ctx context.Context, userID uuid.UUID, req *request.WatchlistRequest) (*response.WatchlistPage, error)
	Remove(ctx context.Context, userID uuid.UUID, filmID string) (string, bool, error)
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
}

type watchlistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWatchlistService(repo *repository.Repository, log *zap.Logger) WatchlistService {
	return &watchlistService{
		repo: repo,
		log:  log.With(zap.String("service", "watchlist")),
	}
}

// watchlistEntry is one loaded watchlist row: the film, its tags sorted by
// name, and when the user added it.
type watchlistEntry struct {
	Film    *entity.Film
	Tags    []*entity.Tag
	Reviews []*entity.Review
	AddedAt time.Time
}

func (s *watchlistService) FetchWatchlist(ctx context.Context, userID uuid.UUID) ([]response.FilmSummary, error) {
	if userID == uuid.Nil {
		return []response.FilmSummary{}, nil
	}

	entries, err := s.loadEntries(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	films := make([]response.FilmSummary, len(entries))
	for i, entry := range entries {
		films[i] = response.FilmToSummary(entry.Film, entry.Tags)
	}

	return films, nil
}

func (s *watchlistService) Page(ctx context.Context, userID uuid.UUID, req *request.WatchlistRequest) (*response.WatchlistPage, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	sortKey := req.Sort
	if sortKey == "" {
		sortKey = SortByDate
	}

	entries, err := s.loadEntries(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	sortWatchlistEntries(entries, sortKey)

	cards := make([]response.FilmCard, len(entries))
	for i, entry := range entries {
		card := buildFilmCard(entry.Film, entry.Tags, entry.Reviews, true)
		addedAt := entry.AddedAt
		card.AddedAt = &addedAt
		cards[i] = card
	}

	s.log.Debug("Watchlist page built",
		zap.String("user_id", userID.String()),
		zap.String("sort", sortKey),
		zap.Int("count", len(cards)),
	)

	return &response.WatchlistPage{
		Films:       cards,
		CurrentSort: sortKey,
	}, nil
}

func (s *watchlistService) Remove(ctx context.Context, userID uuid.UUID, filmID string) (string, bool, error) {
	filmUUID, err := uuid.Parse(filmID)
	if err != nil {
		return "", false, fmt.Errorf("invalid film ID format %s: %w", filmID, err)
	}

	film, err := s.repo.Film.FindByID(ctx, filmUUID)
	if err != nil {
		return "", false, fmt.Errorf("find film: %w", err)
	}
	if film == nil {
		return "", false, fmt.Errorf("film %s not found", filmID)
	}

	removed, err := s.repo.Watchlist.Delete(ctx, userID, filmUUID)
	if err != nil {
		return "", false, fmt.Errorf("remove from watchlist: %w", err)
	}

	if removed {
		s.log.Info("Film removed from watchlist",
			zap.String("user_id", userID.String()),
			zap.String("film_id", filmID),
		)
	}

	return film.Title, removed, nil
}

func (s *watchlistService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	deleted, err := s.repo.Watchlist.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear watchlist: %w", err)
	}

	return deleted, nil
}

// loadEntries fetches the watchlist rows with their films and tags, in
// descending add-time order. Reviews are included for card rendering only
// when asked for.
func (s *watchlistService) loadEntries(ctx context.Context, userID uuid.UUID, withReviews bool) ([]*watchlistEntry, error) {
	items, err := s.repo.Watchlist.FindByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load watchlist", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load watchlist: %w", err)
	}

	filmIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		filmIDs[i] = item.FilmID
	}

	films, err := s.repo.Film.FindByIDs(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("load watchlist films: %w", err)
	}

	tagsByFilm, err := s.repo.Tag.FindByFilmIDs(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("load watchlist tags: %w", err)
	}

	var reviewsByFilm map[uuid.UUID][]*entity.Review
	if withReviews {
		reviewsByFilm, err = s.repo.Review.FindByFilmIDs(ctx, filmIDs)
		if err != nil {
			return nil, fmt.Errorf("load watchlist reviews: %w", err)
		}
	}

	entries := make([]*watchlistEntry, 0, len(items))
	for _, item := range items {
		film, ok := films[item.FilmID]
		if !ok {
			continue
		}
		entries = append(entries, &watchlistEntry{
			Film:    film,
			Tags:    tagsByFilm[item.FilmID],
			Reviews: reviewsByFilm[item.FilmID],
			AddedAt: item.CreatedAt,
		})
	}

	return entries, nil
}

// sortWatchlistEntries orders entries in place. The default "date" key is
// most recently added first. "year" puts films without a year last; "genre"
// sorts by the film's first tag name with untagged films last and title as
// the secondary key. Ties keep their add-time order.
func sortWatchlistEntries(entries []*watchlistEntry, sortKey string) {
	switch sortKey {
	case SortByTitle:
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Film.Title) < strings.ToLower(entries[j].Film.Title)
		})
	case SortByYear:
		sort.SliceStable(entries, func(i, j int) bool {
			yi, yj := entries[i].Film.ReleaseYear, entries[j].Film.ReleaseYear
			if yi == nil {
				return false
			}
			if yj == nil {
				return true
			}
			return *yi > *yj
		})
	case SortByGenre:
		sort.SliceStable(entries, func(i, j int) bool {
			gi, gj := firstTagName(entries[i]), firstTagName(entries[j])
			if gi == nil && gj == nil {
				return strings.ToLower(entries[i].Film.Title) < strings.ToLower(entries[j].Film.Title)
			}
			if gi == nil {
				return false
			}
			if gj == nil {
				return true
			}
			if *gi != *gj {
				return *gi < *gj
			}
			return strings.ToLower(entries[i].Film.Title) < strings.ToLower(entries[j].Film.Title)
		})
	default: // date
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].AddedAt.After(entries[j].AddedAt)
		})
	}
}

// firstTagName returns the film's first tag name. Tags are loaded sorted by
// name, so this is the alphabetically first tag.
func firstTagName(entry *watchlistEntry) *string {
	if len(entry.Tags) == 0 {
		return nil
	}
	return &entry.Tags[0].Name
}
