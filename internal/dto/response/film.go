package response

import (
	"time"

	"cinetheque/internal/data/entity"
	"cinetheque/pkg/utils"
)

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FilmSummary struct {
	ID             string        `json:"id"`
	ExternalID     *string       `json:"external_id,omitempty"`
	Title          string        `json:"title"`
	Overview       *string       `json:"overview,omitempty"`
	ReleaseYear    *int          `json:"release_year,omitempty"`
	PosterURL      *string       `json:"poster_url,omitempty"`
	BackdropURL    *string       `json:"backdrop_url,omitempty"`
	RuntimeMinutes *int          `json:"runtime_minutes,omitempty"`
	Director       *string       `json:"director,omitempty"`
	Country        *string       `json:"country,omitempty"`
	Tags           []TagResponse `json:"tags"`
}

// FilmCard is one tile on the catalog and watchlist pages.
type FilmCard struct {
	Film        FilmSummary `json:"film"`
	AvgRating   *float64    `json:"avg_rating"`
	ReviewCount int         `json:"review_count"`
	InWatchlist bool        `json:"in_watchlist"`
	AddedAt     *time.Time  `json:"added_at,omitempty"`
}

// FilmsPage is the full context the catalog index view needs.
type FilmsPage struct {
	CurrentUser   *UserResponse `json:"current_user,omitempty"`
	Messages      []utils.Flash `json:"messages"`
	Films         []FilmCard    `json:"films"`
	Tags          []TagResponse `json:"tags"`
	SelectedQuery string        `json:"selected_query"`
	SelectedTags  []string      `json:"selected_tags"`
	WatchlistIDs  []string      `json:"watchlist_ids"`
}

// FilmCards is the partial-render payload for the dynamic search.
type FilmCards struct {
	Films         []FilmCard `json:"films"`
	SelectedQuery string     `json:"selected_query"`
	SelectedTags  []string   `json:"selected_tags"`
}

// FilmDetailPage is the full context for one film's page.
type FilmDetailPage struct {
	CurrentUser     *UserResponse    `json:"current_user,omitempty"`
	Messages        []utils.Flash    `json:"messages"`
	Film            FilmSummary      `json:"film"`
	Reviews         []ReviewResponse `json:"reviews"`
	AvgRating       *float64         `json:"avg_rating"`
	ReviewCount     int              `json:"review_count"`
	UserReview      *ReviewResponse  `json:"user_review,omitempty"`
	FilmInWatchlist bool             `json:"film_in_watchlist"`
}

// Helper converters

func TagToResponse(tag *entity.Tag) TagResponse {
	return TagResponse{
		ID:   tag.ID.String(),
		Name: tag.Name,
	}
}

func TagsToResponse(tags []*entity.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, tag := range tags {
		out[i] = TagToResponse(tag)
	}
	return out
}

func FilmToSummary(film *entity.Film, tags []*entity.Tag) FilmSummary {
	return FilmSummary{
		ID:             film.ID.String(),
		ExternalID:     film.ExternalID,
		Title:          film.Title,
		Overview:       film.Overview,
		ReleaseYear:    film.ReleaseYear,
		PosterURL:      film.PosterURL,
		BackdropURL:    film.BackdropURL,
		RuntimeMinutes: film.RuntimeMinutes,
		Director:       film.Director,
		Country:        film.Country,
		Tags:           TagsToResponse(tags),
	}
}
