package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"sori/internal/config"
	"sori/internal/domain"
	"sori/internal/domain/models"
)

// ParseJSON decodes JSON from the request body into dest. The body is capped
// at 1MB.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// pageQuery is the raw pagination query, validated before conversion
type pageQuery struct {
	Cursor  string
	Limit   string
	SortBy  string
	OrderBy string
}

// ParsePageRequest reads cursor, limit, sortBy and orderBy from the query
// string. Invalid values yield a *domain.ValidationError.
func ParsePageRequest(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	raw := pageQuery{
		Cursor:  q.Get("cursor"),
		Limit:   q.Get("limit"),
		SortBy:  q.Get("sortBy"),
		OrderBy: q.Get("orderBy"),
	}

	err := validation.ValidateStruct(&raw,
		validation.Field(&raw.Cursor, is.UUID),
		validation.Field(&raw.Limit, validation.By(func(v any) error {
			s, _ := v.(string)
			if s == "" {
				return nil
			}
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > config.MaxPageLimit {
				return fmt.Errorf("must be an integer between 1 and %d", config.MaxPageLimit)
			}
			return nil
		})),
		validation.Field(&raw.SortBy, validation.In(models.SortByCreatedAt, models.SortByUpdatedAt, models.SortByName)),
		validation.Field(&raw.OrderBy, validation.In(models.OrderAsc, models.OrderDesc)),
	)
	if err != nil {
		return models.PageRequest{}, domain.NewValidationError(err)
	}

	page := models.PageRequest{
		Limit:   config.DefaultPageLimit,
		SortBy:  models.SortByCreatedAt,
		OrderBy: models.OrderDesc,
	}
	if raw.Cursor != "" {
		page.Cursor = &raw.Cursor
	}
	if raw.Limit != "" {
		page.Limit, _ = strconv.Atoi(raw.Limit)
	}
	if raw.SortBy != "" {
		page.SortBy = raw.SortBy
	}
	if raw.OrderBy != "" {
		page.OrderBy = raw.OrderBy
	}
	return page, nil
}
