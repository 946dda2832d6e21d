package memory

import (
	"slices"
	"strings"
	"time"

	"sori/internal/domain/models"
)

// sortFields exposes the columns list endpoints can sort on
type sortFields struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// paginate applies the keyset rules of the SQL repositories: order by the
// sort column then id, start right after the cursor item, take limit items.
// An unknown cursor yields an empty page.
func paginate[T any](items []T, page models.PageRequest, fields func(T) sortFields) []T {
	cmp := func(a, b T) int {
		fa, fb := fields(a), fields(b)
		c := compareBy(page.SortBy, fa, fb)
		if c == 0 {
			c = strings.Compare(fa.ID, fb.ID)
		}
		if page.OrderBy == models.OrderDesc {
			return -c
		}
		return c
	}
	slices.SortFunc(items, cmp)

	if page.Cursor != nil {
		idx := slices.IndexFunc(items, func(item T) bool { return fields(item).ID == *page.Cursor })
		if idx < 0 {
			return []T{}
		}
		items = items[idx+1:]
	}

	if page.Limit > 0 && len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items
}

func compareBy(sortBy string, a, b sortFields) int {
	switch sortBy {
	case models.SortByName:
		return strings.Compare(a.Name, b.Name)
	case models.SortByUpdatedAt:
		return lastModified(a).Compare(lastModified(b))
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// lastModified mirrors COALESCE(updated_at, created_at)
func lastModified(f sortFields) time.Time {
	if f.UpdatedAt != nil {
		return *f.UpdatedAt
	}
	return f.CreatedAt
}
