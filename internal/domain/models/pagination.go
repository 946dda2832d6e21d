package models

// Sort fields accepted by list endpoints.
const (
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByName      = "name"
)

// Sort directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// PageRequest is a cursor pagination query. Cursor is the id of the last
// item of the previous page; the page starts right after it.
type PageRequest struct {
	Cursor  *string
	Limit   int
	SortBy  string
	OrderBy string
}

// Page is a page of items with the ids bounding it.
type Page[T any] struct {
	Items    []T
	Previous *string
	Next     *string
}

// NewPage builds a page. Previous is the first item id; Next is the id of
// the last item when the page is full, nil otherwise.
func NewPage[T any](items []T, limit int, id func(T) string) Page[T] {
	if items == nil {
		items = []T{}
	}
	page := Page[T]{Items: items}
	if len(items) > 0 {
		first := id(items[0])
		page.Previous = &first
	}
	if limit > 0 && len(items) == limit {
		last := id(items[limit-1])
		page.Next = &last
	}
	return page
}
