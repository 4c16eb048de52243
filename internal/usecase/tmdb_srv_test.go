package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinetheque/internal/dto/request"
	"cinetheque/pkg/tmdb"
	"cinetheque/pkg/utils"
)

func tmdbTestClient(serverURL string) *tmdb.Client {
	return tmdb.NewClient(utils.TMDBConfig{
		APIKey:         "test-key",
		BaseURL:        serverURL,
		ImageBaseURL:   "https://image.example/w500",
		Language:       "fr-FR",
		TimeoutSeconds: 5,
	})
}

func TestSearchAnnotatesLocalFilms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"page": 1,
			"results": [
				{"id": 1, "title": "Stalker", "release_date": "1979-05-25"},
				{"id": 2, "title": "Mirror", "release_date": "1975-03-07"}
			],
			"total_pages": 40,
			"total_results": 800
		}`))
	}))
	defer server.Close()

	local := testFilm("Stalker")
	films := newFakeFilmRepo(local)
	service := NewTMDBService(newTestRepository(films, newFakeReviewRepo(), newFakeWatchlistRepo()), nil, tmdbTestClient(server.URL), testLogger())

	page, err := service.Search(context.Background(), &request.TMDBSearchRequest{Query: "tarkovsky", Page: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(page.Results) != 2 {
		t.Fatalf("result count = %d, want 2", len(page.Results))
	}
	if !page.Results[0].AlreadyExists {
		t.Error("catalogued film not flagged as existing")
	}
	if page.Results[0].LocalID == nil || *page.Results[0].LocalID != local.ID.String() {
		t.Errorf("LocalID = %v, want %s", page.Results[0].LocalID, local.ID)
	}
	if page.Results[1].AlreadyExists {
		t.Error("unknown film flagged as existing")
	}

	// Deep catalog pagination is capped
	if page.TotalPages != 10 {
		t.Errorf("TotalPages = %d, want capped at 10", page.TotalPages)
	}
}

func TestSearchWithoutQueryIsEmpty(t *testing.T) {
	service := NewTMDBService(newTestRepository(newFakeFilmRepo(), newFakeReviewRepo(), newFakeWatchlistRepo()), nil, tmdbTestClient("http://127.0.0.1:0"), testLogger())

	page, err := service.Search(context.Background(), &request.TMDBSearchRequest{Query: "", Page: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page.Results) != 0 {
		t.Errorf("empty query returned %d results", len(page.Results))
	}
}

func TestImportShortCircuitsOnExistingTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 915, "title": "Stalker", "release_date": "1979-05-25"}`))
	}))
	defer server.Close()

	local := testFilm("Stalker")
	films := newFakeFilmRepo(local)
	// The nil db proves no transaction is opened for a duplicate.
	service := NewTMDBService(newTestRepository(films, newFakeReviewRepo(), newFakeWatchlistRepo()), nil, tmdbTestClient(server.URL), testLogger())

	result, err := service.Import(context.Background(), 915)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if !result.Success || !result.AlreadyExists {
		t.Errorf("result = %+v, want existing-film success", result)
	}
	if result.LocalID != local.ID.String() {
		t.Errorf("LocalID = %s, want %s", result.LocalID, local.ID)
	}
}

func TestImportSurfacesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	service := NewTMDBService(newTestRepository(newFakeFilmRepo(), newFakeReviewRepo(), newFakeWatchlistRepo()), nil, tmdbTestClient(server.URL), testLogger())

	if _, err := service.Import(context.Background(), 999999); err == nil {
		t.Error("Import() returned no error for an upstream 404")
	}
}
