package usecase

import (
	"context"
	"strings"

	"cinetheque/internal/data/entity"
	"cinetheque/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes for service tests. Only the methods the
// services under test reach are meaningful; the rest return empty results.

type fakeFilmRepo struct {
	films map[uuid.UUID]*entity.Film
}

func newFakeFilmRepo(films ...*entity.Film) *fakeFilmRepo {
	m := make(map[uuid.UUID]*entity.Film)
	for _, f := range films {
		m[f.ID] = f
	}
	return &fakeFilmRepo{films: m}
}

func (f *fakeFilmRepo) Create(ctx context.Context, film *entity.Film) error {
	f.films[film.ID] = film
	return nil
}

func (f *fakeFilmRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Film, error) {
	return f.films[id], nil
}

func (f *fakeFilmRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Film, error) {
	result := make(map[uuid.UUID]*entity.Film)
	for _, id := range ids {
		if film, ok := f.films[id]; ok {
			result[id] = film
		}
	}
	return result, nil
}

func (f *fakeFilmRepo) FindByTitle(ctx context.Context, title string) (*entity.Film, error) {
	for _, film := range f.films {
		if film.Title == title {
			return film, nil
		}
	}
	return nil, nil
}

func (f *fakeFilmRepo) FindAll(ctx context.Context, search *string, tagNames []string) ([]*entity.Film, error) {
	films := make([]*entity.Film, 0, len(f.films))
	for _, film := range f.films {
		if search != nil && *search != "" && !filmMatches(film, *search) {
			continue
		}
		films = append(films, film)
	}
	return films, nil
}

func filmMatches(film *entity.Film, search string) bool {
	needle := strings.ToLower(search)
	if strings.Contains(strings.ToLower(film.Title), needle) {
		return true
	}
	return film.Overview != nil && strings.Contains(strings.ToLower(*film.Overview), needle)
}

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review // by review ID
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, review *entity.Review) error {
	f.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewRepo) FindByUserAndFilm(ctx context.Context, userID, filmID uuid.UUID) (*entity.Review, error) {
	for _, review := range f.reviews {
		if review.UserID == userID && review.FilmID == filmID {
			return review, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	var result []*entity.Review
	for _, review := range f.reviews {
		if review.UserID == userID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) FindByFilmID(ctx context.Context, filmID uuid.UUID) ([]*entity.Review, error) {
	var result []*entity.Review
	for _, review := range f.reviews {
		if review.FilmID == filmID {
			result = append(result, review)
		}
	}
	return result, nil
}

func (f *fakeReviewRepo) FindByFilmIDs(ctx context.Context, filmIDs []uuid.UUID) (map[uuid.UUID][]*entity.Review, error) {
	result := make(map[uuid.UUID][]*entity.Review)
	for _, filmID := range filmIDs {
		reviews, _ := f.FindByFilmID(ctx, filmID)
		if len(reviews) > 0 {
			result[filmID] = reviews
		}
	}
	return result, nil
}

type fakeWatchlistRepo struct {
	items map[uuid.UUID]*entity.WatchlistItem // by item ID
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{items: make(map[uuid.UUID]*entity.WatchlistItem)}
}

func (f *fakeWatchlistRepo) Create(ctx context.Context, item *entity.WatchlistItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeWatchlistRepo) FindByUserAndFilm(ctx context.Context, userID, filmID uuid.UUID) (*entity.WatchlistItem, error) {
	for _, item := range f.items {
		if item.UserID == userID && item.FilmID == filmID {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeWatchlistRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WatchlistItem, error) {
	var result []*entity.WatchlistItem
	for _, item := range f.items {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeWatchlistRepo) Delete(ctx context.Context, userID, filmID uuid.UUID) (bool, error) {
	for id, item := range f.items {
		if item.UserID == userID && item.FilmID == filmID {
			delete(f.items, id)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWatchlistRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var deleted int64
	for id, item := range f.items {
		if item.UserID == userID {
			delete(f.items, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeTagRepo struct {
	tags map[uuid.UUID]*entity.Tag
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[uuid.UUID]*entity.Tag)}
}

func (f *fakeTagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeTagRepo) FindAll(ctx context.Context) ([]*entity.Tag, error) {
	tags := make([]*entity.Tag, 0, len(f.tags))
	for _, tag := range f.tags {
		tags = append(tags, tag)
	}
	return tags, nil
}

func (f *fakeTagRepo) FindByNameFold(ctx context.Context, name string) (*entity.Tag, error) {
	for _, tag := range f.tags {
		if tag.Name == name {
			return tag, nil
		}
	}
	return nil, nil
}

func (f *fakeTagRepo) FindByFilmIDs(ctx context.Context, filmIDs []uuid.UUID) (map[uuid.UUID][]*entity.Tag, error) {
	return map[uuid.UUID][]*entity.Tag{}, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	result := make(map[uuid.UUID]*entity.User)
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session // by token
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session, ok := f.sessions[tokenUUID]
	if !ok || session.RevokedAt != nil {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	if session, ok := f.sessions[tokenUUID]; ok {
		now := session.CreatedAt
		session.RevokedAt = &now
	}
	return nil
}

func newTestRepository(film *fakeFilmRepo, review *fakeReviewRepo, watchlist *fakeWatchlistRepo) *repository.Repository {
	return &repository.Repository{
		User:      newFakeUserRepo(),
		Session:   newFakeSessionRepo(),
		Film:      film,
		Tag:       newFakeTagRepo(),
		Review:    review,
		Watchlist: watchlist,
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
