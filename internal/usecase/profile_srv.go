package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cinetheque/internal/data/entity"
	"cinetheque/internal/data/repository"
	"cinetheque/internal/dto/request"
	"cinetheque/internal/dto/response"
	"cinetheque/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SortByRecent     = "recent"
	SortByRatingHigh = "rating_high"
	SortByRatingLow  = "rating_low"

	highlightLimit = 6
)

type ProfileService interface {
	Page(ctx context.Context, userID uuid.UUID, req *request.ProfileRequest) (*response.ProfilePage, error)
}

type profileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProfileService(repo *repository.Repository, log *zap.Logger) ProfileService {
	return &profileService{
		repo: repo,
		log:  log.With(zap.String("service", "profile")),
	}
}

// reviewWithFilm pairs a review with the film it rates, plus the film's
// tags for genre statistics.
type reviewWithFilm struct {
	Review *entity.Review
	Film   *entity.Film
	Tags   []*entity.Tag
}

func (s *profileService) Page(ctx context.Context, userID uuid.UUID, req *request.ProfileRequest) (*response.ProfilePage, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	sortKey := req.Sort
	if sortKey == "" {
		sortKey = SortByRecent
	}

	all, err := s.loadUserReviews(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Statistics always cover the full history, not the filtered view.
	stats := buildStats(all)

	reviews := filterReviewsByTitle(all, req.Query)
	sortUserReviews(reviews, sortKey)

	reviewResponses := make([]response.ProfileReview, len(reviews))
	for i, rwf := range reviews {
		reviewResponses[i] = response.ProfileReview{
			Review: response.ReviewToResponse(rwf.Review, "", rwf.Film.Title),
			Film:   response.FilmToSummary(rwf.Film, rwf.Tags),
		}
	}

	return &response.ProfilePage{
		Stats:       stats,
		Reviews:     reviewResponses,
		TopRated:    pickHighlights(reviews, func(r *reviewWithFilm) bool { return r.Review.Rating == 5 }),
		LowestRated: pickHighlights(reviews, func(r *reviewWithFilm) bool { return r.Review.Rating <= 2 }),
		SearchQuery: req.Query,
		CurrentSort: sortKey,
	}, nil
}

func (s *profileService) loadUserReviews(ctx context.Context, userID uuid.UUID) ([]*reviewWithFilm, error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user reviews", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	filmIDs := make([]uuid.UUID, len(reviews))
	for i, review := range reviews {
		filmIDs[i] = review.FilmID
	}

	films, err := s.repo.Film.FindByIDs(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("load reviewed films: %w", err)
	}

	tagsByFilm, err := s.repo.Tag.FindByFilmIDs(ctx, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("load film tags: %w", err)
	}

	result := make([]*reviewWithFilm, 0, len(reviews))
	for _, review := range reviews {
		film, ok := films[review.FilmID]
		if !ok {
			continue
		}
		result = append(result, &reviewWithFilm{
			Review: review,
			Film:   film,
			Tags:   tagsByFilm[review.FilmID],
		})
	}

	return result, nil
}

// buildStats aggregates a user's review history. The rating distribution
// always carries all five buckets; films without a runtime contribute zero
// minutes. The favorite genre is the most frequent tag across reviewed
// films, alphabetical on ties.
func buildStats(reviews []*reviewWithFilm) response.Stats {
	stats := response.Stats{
		TotalFilms:         len(reviews),
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		GenreCounts:        []response.GenreCount{},
	}

	if len(reviews) == 0 {
		return stats
	}

	ratingSum := 0
	genreTotals := make(map[string]int)
	for _, rwf := range reviews {
		ratingSum += rwf.Review.Rating
		stats.RatingDistribution[rwf.Review.Rating]++
		if rwf.Film.RuntimeMinutes != nil {
			stats.TotalMinutes += *rwf.Film.RuntimeMinutes
		}
		for _, tag := range rwf.Tags {
			genreTotals[tag.Name]++
		}
	}

	stats.TotalHours = utils.Round1(float64(stats.TotalMinutes) / 60)
	avg := utils.Round1(float64(ratingSum) / float64(len(reviews)))
	stats.AvgRating = &avg

	counts := make([]response.GenreCount, 0, len(genreTotals))
	for name, count := range genreTotals {
		counts = append(counts, response.GenreCount{Name: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	if len(counts) > 5 {
		counts = counts[:5]
	}
	stats.GenreCounts = counts
	if len(counts) > 0 {
		favorite := counts[0].Name
		stats.FavoriteGenre = &favorite
	}

	return stats
}

// filterReviewsByTitle keeps reviews whose film title contains the query,
// case-insensitively. An empty query keeps everything.
func filterReviewsByTitle(reviews []*reviewWithFilm, query string) []*reviewWithFilm {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]*reviewWithFilm(nil), reviews...)
	}

	needle := strings.ToLower(query)
	filtered := make([]*reviewWithFilm, 0, len(reviews))
	for _, rwf := range reviews {
		if strings.Contains(strings.ToLower(rwf.Film.Title), needle) {
			filtered = append(filtered, rwf)
		}
	}

	return filtered
}

// sortUserReviews orders reviews in place. "recent" is newest first; the
// rating keys break ties by recency, "title" sorts by film title.
func sortUserReviews(reviews []*reviewWithFilm, sortKey string) {
	switch sortKey {
	case SortByRatingHigh:
		sort.SliceStable(reviews, func(i, j int) bool {
			if reviews[i].Review.Rating != reviews[j].Review.Rating {
				return reviews[i].Review.Rating > reviews[j].Review.Rating
			}
			return reviews[i].Review.CreatedAt.After(reviews[j].Review.CreatedAt)
		})
	case SortByRatingLow:
		sort.SliceStable(reviews, func(i, j int) bool {
			if reviews[i].Review.Rating != reviews[j].Review.Rating {
				return reviews[i].Review.Rating < reviews[j].Review.Rating
			}
			return reviews[i].Review.CreatedAt.After(reviews[j].Review.CreatedAt)
		})
	case SortByTitle:
		sort.SliceStable(reviews, func(i, j int) bool {
			return strings.ToLower(reviews[i].Film.Title) < strings.ToLower(reviews[j].Film.Title)
		})
	default: // recent
		sort.SliceStable(reviews, func(i, j int) bool {
			return reviews[i].Review.CreatedAt.After(reviews[j].Review.CreatedAt)
		})
	}
}

// pickHighlights takes the first few matching reviews from an already
// sorted list.
func pickHighlights(reviews []*reviewWithFilm, match func(*reviewWithFilm) bool) []response.ProfileReview {
	picked := make([]response.ProfileReview, 0, highlightLimit)
	for _, rwf := range reviews {
		if !match(rwf) {
			continue
		}
		picked = append(picked, response.ProfileReview{
			Review: response.ReviewToResponse(rwf.Review, "", rwf.Film.Title),
			Film:   response.FilmToSummary(rwf.Film, rwf.Tags),
		})
		if len(picked) == highlightLimit {
			break
		}
	}

	return picked
}
