package dto

// Query parameter names of GET /produtos.
const (
	ParamSearch   = "search"
	ParamCategory = "category"
	ParamMaxPrice = "maxPrice"
	ParamPage     = "page"
)

// Response headers set by GET /produtos when a page was requested.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderTotalPages = "X-Total-Pages"
)

// ListParams is the query of GET /produtos. Zero fields are omitted.
type ListParams struct {
	Search   string
	Category string
	MaxPrice float64
	Page     int
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}
