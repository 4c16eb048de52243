package response

import (
	"cinetheque/pkg/utils"
)

// WatchlistPage is the full context for the watchlist view.
type WatchlistPage struct {
	CurrentUser *UserResponse `json:"current_user,omitempty"`
	Messages    []utils.Flash `json:"messages"`
	Films       []FilmCard    `json:"films"`
	CurrentSort string        `json:"current_sort"`
}
