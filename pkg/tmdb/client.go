package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cinetheque/pkg/utils"
)

// Client talks to the TMDB v3 API. It is the only outbound dependency of
// the application and is consumed synchronously per request.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	client       *http.Client
}

type SearchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
}

type MovieDetails struct {
	Movie
	Runtime             *int                `json:"runtime"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	Credits             Credits             `json:"credits"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ProductionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

type Credits struct {
	Crew []CrewMember `json:"crew"`
}

type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

func NewClient(config utils.TMDBConfig) *Client {
	return &Client{
		apiKey:       config.APIKey,
		baseURL:      config.BaseURL,
		imageBaseURL: config.ImageBaseURL,
		language:     config.Language,
		client: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, out any) error {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	query := u.Query()
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)
	for key, value := range params {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// SearchMovies searches for movies by title.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*SearchResponse, error) {
	if page <= 0 {
		page = 1
	}

	var searchResp SearchResponse
	err := c.get(ctx, "/search/movie", map[string]string{
		"query": query,
		"page":  strconv.Itoa(page),
	}, &searchResp)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	return &searchResp, nil
}

// GetMovieDetails fetches full details for one movie, crew included.
func (c *Client) GetMovieDetails(ctx context.Context, tmdbID int) (*MovieDetails, error) {
	endpoint := fmt.Sprintf("/movie/%d", tmdbID)

	var details MovieDetails
	err := c.get(ctx, endpoint, map[string]string{
		"append_to_response": "credits",
	}, &details)
	if err != nil {
		return nil, fmt.Errorf("movie details: %w", err)
	}

	return &details, nil
}

// GetPopularMovies fetches the popular movies list.
func (c *Client) GetPopularMovies(ctx context.Context, page int) (*SearchResponse, error) {
	if page <= 0 {
		page = 1
	}

	var searchResp SearchResponse
	err := c.get(ctx, "/movie/popular", map[string]string{
		"page": strconv.Itoa(page),
	}, &searchResp)
	if err != nil {
		return nil, fmt.Errorf("popular movies: %w", err)
	}

	return &searchResp, nil
}

// ImageBaseURL exposes the configured poster base for the mappers.
func (c *Client) ImageBaseURL() string {
	return c.imageBaseURL
}
