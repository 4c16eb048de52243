package request

type WatchlistRequest struct {
	Sort string `json:"sort" validate:"omitempty,oneof=date title year genre"`
}
