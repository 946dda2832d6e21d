package postgres

import (
	"fmt"

	"sori/internal/domain/models"
)

// sortColumn maps a sort field to its SQL expression
func sortColumn(sortBy string) string {
	switch sortBy {
	case models.SortByName:
		return "name"
	case models.SortByUpdatedAt:
		return "COALESCE(updated_at, created_at)"
	default:
		return "created_at"
	}
}

// keyset builds the cursor condition and ORDER BY/LIMIT tail of a list
// query. The cursor row is looked up by id, so an unknown cursor matches
// nothing. nextArg is the position of the first placeholder to use.
func keyset(table string, page models.PageRequest, nextArg int) (cond, tail string, args []any) {
	col := sortColumn(page.SortBy)
	dir, op := "DESC", "<"
	if page.OrderBy == models.OrderAsc {
		dir, op = "ASC", ">"
	}

	if page.Cursor != nil {
		cond = fmt.Sprintf(" AND (%s, id) %s (SELECT %s, id FROM %s WHERE id = $%d)", col, op, col, table, nextArg)
		args = append(args, *page.Cursor)
		nextArg++
	}

	tail = fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT $%d", col, dir, dir, nextArg)
	args = append(args, page.Limit)
	return cond, tail, args
}
