package response

import (
	"cinetheque/pkg/tmdb"
	"cinetheque/pkg/utils"
)

// TMDBMovieCard is one search/popular result annotated with its local state.
type TMDBMovieCard struct {
	tmdb.DisplayMovie
	AlreadyExists bool    `json:"already_exists"`
	LocalID       *string `json:"local_id,omitempty"`
}

// TMDBSearchPage is the full context for the search and popular views.
type TMDBSearchPage struct {
	CurrentUser  *UserResponse   `json:"current_user,omitempty"`
	Messages     []utils.Flash   `json:"messages"`
	Query        string          `json:"query"`
	Results      []TMDBMovieCard `json:"results"`
	TotalResults int             `json:"total_results"`
	CurrentPage  int             `json:"current_page"`
	TotalPages   int             `json:"total_pages"`
	IsPopular    bool            `json:"is_popular"`
}

// ImportResult is the JSON envelope of a TMDB import.
type ImportResult struct {
	Success       bool   `json:"success"`
	LocalID       string `json:"local_id,omitempty"`
	Title         string `json:"title,omitempty"`
	Message       string `json:"message"`
	AlreadyExists bool   `json:"already_exists,omitempty"`
}
