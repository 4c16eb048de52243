package request

// ListFilmsRequest carries the catalog filters parsed from the query string.
type ListFilmsRequest struct {
	Query string   `json:"q"`
	Tags  []string `json:"tags"`
}
