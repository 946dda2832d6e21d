package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sori/internal/domain"
	"sori/internal/domain/models"
)

func TestOptionalStringUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"image":null}`, wantPresent: true},
		{name: "value", body: `{"image":"http://x.test/a.png"}`, wantPresent: true, wantValue: strPtr("http://x.test/a.png")},
		{name: "empty string", body: `{"image":""}`, wantPresent: true, wantValue: strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				Image OptionalString `json:"image"`
			}
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if req.Image.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", req.Image.Present, tt.wantPresent)
			}
			if (req.Image.Value == nil) != (tt.wantValue == nil) {
				t.Fatalf("Value = %v, want %v", req.Image.Value, tt.wantValue)
			}
			if tt.wantValue != nil && *req.Image.Value != *tt.wantValue {
				t.Errorf("Value = %q, want %q", *req.Image.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptionalStringApply(t *testing.T) {
	current := strPtr("old")

	if (OptionalString{}).Apply(&current) {
		t.Error("absent field applied")
	}
	if current == nil || *current != "old" {
		t.Fatalf("absent field changed value to %v", current)
	}

	if !Set("new").Apply(&current) || *current != "new" {
		t.Errorf("Set().Apply() left %v", current)
	}

	if !Null().Apply(&current) || current != nil {
		t.Errorf("Null().Apply() left %v", current)
	}
}

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    models.PageRequest
		wantErr bool
	}{
		{
			name:  "defaults",
			query: "",
			want:  models.PageRequest{Limit: 20, SortBy: "createdAt", OrderBy: "desc"},
		},
		{
			name:  "explicit values",
			query: "?cursor=6f1c0d2e-4b1a-4d8e-9a55-2f0c8b7e1a10&limit=5&sortBy=name&orderBy=asc",
			want:  models.PageRequest{Cursor: strPtr("6f1c0d2e-4b1a-4d8e-9a55-2f0c8b7e1a10"), Limit: 5, SortBy: "name", OrderBy: "asc"},
		},
		{name: "cursor not an id", query: "?cursor=abc", wantErr: true},
		{name: "limit too large", query: "?limit=101", wantErr: true},
		{name: "limit zero", query: "?limit=0", wantErr: true},
		{name: "limit not a number", query: "?limit=ten", wantErr: true},
		{name: "unknown sort field", query: "?sortBy=email", wantErr: true},
		{name: "unknown order", query: "?orderBy=up", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)
			got, err := ParsePageRequest(r)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("ParsePageRequest() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePageRequest() unexpected error: %v", err)
			}
			if got.Limit != tt.want.Limit || got.SortBy != tt.want.SortBy || got.OrderBy != tt.want.OrderBy {
				t.Errorf("ParsePageRequest() = %+v, want %+v", got, tt.want)
			}
			if (got.Cursor == nil) != (tt.want.Cursor == nil) || (got.Cursor != nil && *got.Cursor != *tt.want.Cursor) {
				t.Errorf("Cursor = %v, want %v", got.Cursor, tt.want.Cursor)
			}
		})
	}
}

func TestRespondErrorLocalizes(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "ko")
	w := httptest.NewRecorder()

	RespondError(w, r, http.StatusForbidden, "no_permission")

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != "no_permission" {
		t.Errorf("code = %q", body.Code)
	}
	if !strings.Contains(body.Message, "권한") {
		t.Errorf("message = %q, want korean text", body.Message)
	}
}

func strPtr(s string) *string { return &s }
