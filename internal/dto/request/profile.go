package request

type ProfileRequest struct {
	Query string `json:"q"`
	Sort  string `json:"sort" validate:"omitempty,oneof=recent rating_high rating_low title"`
}
