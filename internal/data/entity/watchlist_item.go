package entity

import (
	"github.com/google/uuid"
)

// WatchlistItem marks a film a user intends to watch. One row per
// (user, film) pair, enforced by a unique constraint.
type WatchlistItem struct {
	BaseSimple
	UserID uuid.UUID `db:"user_id"`
	FilmID uuid.UUID `db:"film_id"`
}
