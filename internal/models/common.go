package models

// ErrorResponse is the JSON error payload returned by every handler.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ListResponse is the shape every paged list endpoint returns.
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	TotalPages int `json:"totalPages"`
}

// NewListResponse builds the paged list payload. A nil slice becomes an
// empty one so "items" always serializes as a JSON array.
func NewListResponse[T any](items []T, total, limit int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, TotalPages: TotalPages(total, limit)}
}

// UploadResponse carries the hosted URL of a relayed image upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// TotalPages computes the page count for a result set. Zero rows still report
// zero pages so the client's pagination controls stay hidden.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
