package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinetheque/pkg/utils"
)

func testClient(serverURL string) *Client {
	return NewClient(utils.TMDBConfig{
		APIKey:         "test-key",
		BaseURL:        serverURL,
		ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
		Language:       "fr-FR",
		TimeoutSeconds: 5,
	})
}

func TestSearchMoviesSendsQueryAndCredentials(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"page": 2,
			"results": [{"id": 603, "title": "Matrix", "release_date": "1999-03-31", "vote_average": 8.2}],
			"total_pages": 3,
			"total_results": 50
		}`))
	}))
	defer server.Close()

	resp, err := testClient(server.URL).SearchMovies(context.Background(), "matrix", 2)
	if err != nil {
		t.Fatalf("SearchMovies() error = %v", err)
	}

	if gotPath != "/search/movie" {
		t.Errorf("path = %q, want /search/movie", gotPath)
	}
	for key, want := range map[string]string{
		"query":    "matrix",
		"page":     "2",
		"api_key":  "test-key",
		"language": "fr-FR",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %q = %v, want %q", key, got, want)
		}
	}

	if len(resp.Results) != 1 || resp.Results[0].ID != 603 {
		t.Errorf("results = %+v", resp.Results)
	}
	if resp.TotalResults != 50 {
		t.Errorf("TotalResults = %d, want 50", resp.TotalResults)
	}
}

func TestSearchMoviesClampsPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "1" {
			t.Errorf("page = %q, want 1", got)
		}
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	if _, err := testClient(server.URL).SearchMovies(context.Background(), "x", 0); err != nil {
		t.Fatalf("SearchMovies() error = %v", err)
	}
}

func TestGetMovieDetailsAppendsCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("path = %q, want /movie/603", r.URL.Path)
		}
		if got := r.URL.Query().Get("append_to_response"); got != "credits" {
			t.Errorf("append_to_response = %q, want credits", got)
		}
		w.Write([]byte(`{
			"id": 603,
			"title": "Matrix",
			"runtime": 136,
			"genres": [{"id": 28, "name": "Action"}],
			"production_countries": [{"iso_3166_1": "US", "name": "United States of America"}],
			"credits": {"crew": [{"name": "Lana Wachowski", "job": "Director"}]}
		}`))
	}))
	defer server.Close()

	details, err := testClient(server.URL).GetMovieDetails(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetMovieDetails() error = %v", err)
	}

	if details.Runtime == nil || *details.Runtime != 136 {
		t.Errorf("Runtime = %v, want 136", details.Runtime)
	}
	if len(details.Genres) != 1 || details.Genres[0].Name != "Action" {
		t.Errorf("Genres = %+v", details.Genres)
	}
	if len(details.Credits.Crew) != 1 || details.Credits.Crew[0].Job != "Director" {
		t.Errorf("Crew = %+v", details.Credits.Crew)
	}
}

func TestUpstreamErrorsSurface(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	if _, err := testClient(server.URL).SearchMovies(context.Background(), "x", 1); err == nil {
		t.Error("SearchMovies() returned no error for a 401 response")
	}
	if _, err := testClient(server.URL).GetMovieDetails(context.Background(), 1); err == nil {
		t.Error("GetMovieDetails() returned no error for a 401 response")
	}
}
