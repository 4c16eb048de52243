package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinetheque/internal/dto/request"
	"cinetheque/internal/dto/response"
	"cinetheque/internal/usecase"
	"cinetheque/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubProfileService struct {
	page *response.ProfilePage
}

func (s *stubProfileService) Page(ctx context.Context, userID uuid.UUID, req *request.ProfileRequest) (*response.ProfilePage, error) {
	return s.page, nil
}

type stubWatchlistService struct {
	films []response.FilmSummary
}

func (s *stubWatchlistService) FetchWatchlist(ctx context.Context, userID uuid.UUID) ([]response.FilmSummary, error) {
	if userID == uuid.Nil {
		return []response.FilmSummary{}, nil
	}
	return s.films, nil
}

func (s *stubWatchlistService) Page(ctx context.Context, userID uuid.UUID, req *request.WatchlistRequest) (*response.WatchlistPage, error) {
	return &response.WatchlistPage{}, nil
}

func (s *stubWatchlistService) Remove(ctx context.Context, userID uuid.UUID, filmID string) (string, bool, error) {
	return "", false, nil
}

func (s *stubWatchlistService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

var _ usecase.ProfileService = (*stubProfileService)(nil)
var _ usecase.WatchlistService = (*stubWatchlistService)(nil)

func TestProfilePageCarriesWatchlist(t *testing.T) {
	watchlist := []response.FilmSummary{
		{ID: uuid.NewString(), Title: "Stalker"},
		{ID: uuid.NewString(), Title: "Mirror"},
	}
	handler := NewProfileHandler(
		&stubProfileService{page: &response.ProfilePage{CurrentSort: "recent"}},
		&stubWatchlistService{films: watchlist},
		utils.NewFlashStore("test-secret-key", "test_flash"),
		zap.NewNop(),
	)

	r := httptest.NewRequest(http.MethodGet, "/profil", nil)
	ctx := utils.SetUserContext(r.Context(), uuid.New(), "claire")
	w := httptest.NewRecorder()

	handler.Page(w, r.WithContext(ctx))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var envelope struct {
		Data response.ProfilePage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(envelope.Data.Watchlist) != 2 {
		t.Fatalf("watchlist length = %d, want 2", len(envelope.Data.Watchlist))
	}
	if envelope.Data.Watchlist[0].Title != "Stalker" {
		t.Errorf("first watchlist film = %q, want Stalker", envelope.Data.Watchlist[0].Title)
	}
	if envelope.Data.CurrentUser == nil || envelope.Data.CurrentUser.Username != "claire" {
		t.Errorf("CurrentUser = %+v, want claire", envelope.Data.CurrentUser)
	}
}
