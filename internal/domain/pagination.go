package domain

// Pagination describes one page of a filtered listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// Page is a bounded, ordered slice of rows plus the total matching count.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
