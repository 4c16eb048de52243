package request

type TMDBSearchRequest struct {
	Query string `json:"q"`
	Page  int    `json:"page" validate:"omitempty,min=1"`
}
