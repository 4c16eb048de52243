package entity

import (
	"time"

	"github.com/google/uuid"
)

// FilmTag links a film to a tag.
type FilmTag struct {
	FilmID    uuid.UUID `db:"film_id"`
	TagID     uuid.UUID `db:"tag_id"`
	CreatedAt time.Time `db:"created_at"`
}
