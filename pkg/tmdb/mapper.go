package tmdb

import (
	"strconv"
)

// DisplayMovie is the card shape rendered on search and popular pages.
type DisplayMovie struct {
	TMDBID      int     `json:"tmdb_id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterURL   *string `json:"poster_url"`
	ReleaseYear *int    `json:"release_year"`
	VoteAverage float64 `json:"vote_average"`
}

// FilmData carries everything needed to create a local film from TMDB
// details, plus the genre names to resolve into tags.
type FilmData struct {
	Title          string
	Overview       *string
	ReleaseYear    *int
	PosterURL      *string
	BackdropURL    *string
	Director       *string
	Country        *string
	RuntimeMinutes *int
	Genres         []string
}

// FormatForDisplay maps a raw TMDB movie to its display card.
func FormatForDisplay(movie Movie, imageBaseURL string) DisplayMovie {
	return DisplayMovie{
		TMDBID:      movie.ID,
		Title:       movie.Title,
		Overview:    movie.Overview,
		PosterURL:   imageURL(movie.PosterPath, imageBaseURL),
		ReleaseYear: parseReleaseYear(movie.ReleaseDate),
		VoteAverage: movie.VoteAverage,
	}
}

// ExtractFilmData maps TMDB details to local film fields. The director is
// the first crew member whose job is "Director"; the country is the first
// listed production country.
func ExtractFilmData(details *MovieDetails, imageBaseURL string) FilmData {
	var director *string
	for _, member := range details.Credits.Crew {
		if member.Job == "Director" {
			name := member.Name
			director = &name
			break
		}
	}

	var country *string
	if len(details.ProductionCountries) > 0 {
		name := details.ProductionCountries[0].Name
		country = &name
	}

	genres := make([]string, 0, len(details.Genres))
	for _, genre := range details.Genres {
		genres = append(genres, genre.Name)
	}

	var overview *string
	if details.Overview != "" {
		o := details.Overview
		overview = &o
	}

	return FilmData{
		Title:          details.Title,
		Overview:       overview,
		ReleaseYear:    parseReleaseYear(details.ReleaseDate),
		PosterURL:      imageURL(details.PosterPath, imageBaseURL),
		BackdropURL:    imageURL(details.BackdropPath, imageBaseURL),
		Director:       director,
		Country:        country,
		RuntimeMinutes: details.Runtime,
		Genres:         genres,
	}
}

func imageURL(path *string, imageBaseURL string) *string {
	if path == nil || *path == "" {
		return nil
	}
	full := imageBaseURL + *path
	return &full
}

// parseReleaseYear takes the year from the first 4 characters of a TMDB
// date string, nil when absent or too short.
func parseReleaseYear(releaseDate string) *int {
	if len(releaseDate) < 4 {
		return nil
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return nil
	}
	return &year
}
