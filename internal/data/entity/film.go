package entity

type Film struct {
	Base
	ExternalID     *string `db:"external_id"`
	Title          string  `db:"title"`
	Overview       *string `db:"overview"`
	ReleaseYear    *int    `db:"release_year"`
	PosterURL      *string `db:"poster_url"`
	BackdropURL    *string `db:"backdrop_url"`
	RuntimeMinutes *int    `db:"runtime_minutes"`
	Director       *string `db:"director"`
	Country        *string `db:"country"`
}
