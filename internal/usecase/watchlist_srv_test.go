package usecase

import (
	"context"
	"testing"
	"time"

	"cinetheque/internal/data/entity"

	"github.com/google/uuid"
)

func entryWith(title string, year *int, genres []string, addedAt time.Time) *watchlistEntry {
	tags := make([]*entity.Tag, len(genres))
	for i, name := range genres {
		tags[i] = &entity.Tag{Name: name}
	}
	return &watchlistEntry{
		Film: &entity.Film{
			Base:        entity.Base{ID: uuid.New()},
			Title:       title,
			ReleaseYear: year,
		},
		Tags:    tags,
		AddedAt: addedAt,
	}
}

func titles(entries []*watchlistEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Film.Title
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestSortWatchlistEntries(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	build := func() []*watchlistEntry {
		return []*watchlistEntry{
			entryWith("Solaris", intPtr(1972), []string{"Science Fiction"}, base.Add(1*time.Hour)),
			entryWith("amélie", intPtr(2001), []string{"Comedy", "Romance"}, base.Add(3*time.Hour)),
			entryWith("Le Samouraï", nil, nil, base.Add(2*time.Hour)),
			entryWith("Brazil", intPtr(1985), []string{"Comedy"}, base),
		}
	}

	tests := []struct {
		sortKey string
		want    []string
	}{
		{SortByDate, []string{"amélie", "Le Samouraï", "Solaris", "Brazil"}},
		{SortByTitle, []string{"amélie", "Brazil", "Le Samouraï", "Solaris"}},
		// No year sorts last
		{SortByYear, []string{"amélie", "Brazil", "Solaris", "Le Samouraï"}},
		// First tag name, untagged last, title as tiebreak
		{SortByGenre, []string{"amélie", "Brazil", "Solaris", "Le Samouraï"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortKey, func(t *testing.T) {
			entries := build()
			sortWatchlistEntries(entries, tt.sortKey)
			got := titles(entries)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("sort %q = %v, want %v", tt.sortKey, got, tt.want)
				}
			}
		})
	}
}

func TestSortWatchlistEntriesGenreTieBreaksOnTitle(t *testing.T) {
	base := time.Now()
	entries := []*watchlistEntry{
		entryWith("Zelig", nil, []string{"Comedy"}, base),
		entryWith("Annie Hall", nil, []string{"Comedy"}, base.Add(time.Hour)),
	}

	sortWatchlistEntries(entries, SortByGenre)
	got := titles(entries)
	if got[0] != "Annie Hall" || got[1] != "Zelig" {
		t.Errorf("genre tie order = %v, want title order", got)
	}
}

func TestSortWatchlistEntriesUnknownKeyFallsBackToDate(t *testing.T) {
	base := time.Now()
	entries := []*watchlistEntry{
		entryWith("Older", nil, nil, base),
		entryWith("Newer", nil, nil, base.Add(time.Minute)),
	}

	sortWatchlistEntries(entries, "bogus")
	if entries[0].Film.Title != "Newer" {
		t.Errorf("fallback order starts with %q, want most recent", entries[0].Film.Title)
	}
}

func TestRemoveReportsFilmTitle(t *testing.T) {
	film := testFilm("Rashomon")
	watchlist := newFakeWatchlistRepo()
	service := NewWatchlistService(newTestRepository(newFakeFilmRepo(film), newFakeReviewRepo(), watchlist), testLogger())

	userID := uuid.New()
	ctx := context.Background()

	watchlist.Create(ctx, &entity.WatchlistItem{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     userID,
		FilmID:     film.ID,
	})

	title, removed, err := service.Remove(ctx, userID, film.ID.String())
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if !removed || title != "Rashomon" {
		t.Errorf("Remove() = (%q, %v), want (Rashomon, true)", title, removed)
	}

	// Removing again is a no-op, not an error
	_, removed, err = service.Remove(ctx, userID, film.ID.String())
	if err != nil {
		t.Fatalf("second Remove() error = %v", err)
	}
	if removed {
		t.Error("second Remove() reported a removal")
	}
}

func TestClearEmptiesTheWatchlist(t *testing.T) {
	filmA := testFilm("A")
	filmB := testFilm("B")
	films := newFakeFilmRepo(filmA, filmB)
	watchlist := newFakeWatchlistRepo()
	service := NewWatchlistService(newTestRepository(films, newFakeReviewRepo(), watchlist), testLogger())

	userID := uuid.New()
	ctx := context.Background()
	for _, film := range []*entity.Film{filmA, filmB} {
		watchlist.Create(ctx, &entity.WatchlistItem{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			UserID:     userID,
			FilmID:     film.ID,
		})
	}

	deleted, err := service.Clear(ctx, userID)
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("Clear() = %d, want 2", deleted)
	}

	items, _ := watchlist.FindByUser(ctx, userID)
	if len(items) != 0 {
		t.Errorf("watchlist size after Clear() = %d, want 0", len(items))
	}
}

func TestFetchWatchlistAnonymousIsEmpty(t *testing.T) {
	service := NewWatchlistService(newTestRepository(newFakeFilmRepo(), newFakeReviewRepo(), newFakeWatchlistRepo()), testLogger())

	films, err := service.FetchWatchlist(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatalf("FetchWatchlist() error = %v", err)
	}
	if len(films) != 0 {
		t.Errorf("anonymous watchlist size = %d, want 0", len(films))
	}
}
