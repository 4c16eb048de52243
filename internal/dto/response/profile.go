package response

import (
	"cinetheque/pkg/utils"
)

type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats aggregates a user's reviewing activity. All fields have a defined
// empty shape when the user has no reviews.
type Stats struct {
	TotalFilms         int          `json:"total_films"`
	TotalMinutes       int          `json:"total_minutes"`
	TotalHours         float64      `json:"total_hours"`
	AvgRating          *float64     `json:"avg_rating"`
	RatingDistribution map[int]int  `json:"rating_distribution"`
	FavoriteGenre      *string      `json:"favorite_genre"`
	GenreCounts        []GenreCount `json:"genre_counts"`
}

// ProfilePage is the full context for the profile view.
type ProfilePage struct {
	CurrentUser *UserResponse   `json:"current_user,omitempty"`
	Messages    []utils.Flash   `json:"messages"`
	Stats       Stats           `json:"stats"`
	Reviews     []ProfileReview `json:"reviews"`
	TopRated    []ProfileReview `json:"top_rated"`
	LowestRated []ProfileReview `json:"lowest_rated"`
	Watchlist   []FilmSummary   `json:"watchlist"`
	SearchQuery string          `json:"search_query"`
	CurrentSort string          `json:"current_sort"`
}
