package response

import (
	"time"

	"cinetheque/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	FilmID    string    `json:"film_id"`
	FilmTitle string    `json:"film_title,omitempty"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileReview pairs a review with its film card for the profile page.
type ProfileReview struct {
	Review ReviewResponse `json:"review"`
	Film   FilmSummary    `json:"film"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, username, filmTitle string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		UserID:    review.UserID.String(),
		Username:  username,
		FilmID:    review.FilmID.String(),
		FilmTitle: filmTitle,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}
