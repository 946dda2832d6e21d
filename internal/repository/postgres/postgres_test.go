package postgres

import (
	"strings"
	"testing"

	"sori/internal/domain/models"
)

func TestKeyset(t *testing.T) {
	cursor := "6f1c0d2e-4b1a-4d8e-9a55-2f0c8b7e1a10"

	tests := []struct {
		name     string
		page     models.PageRequest
		wantCond string
		wantTail string
		wantArgs int
	}{
		{
			name:     "first page newest first",
			page:     models.PageRequest{Limit: 20, SortBy: models.SortByCreatedAt, OrderBy: models.OrderDesc},
			wantCond: "",
			wantTail: " ORDER BY created_at DESC, id DESC LIMIT $2",
			wantArgs: 1,
		},
		{
			name:     "after cursor by name",
			page:     models.PageRequest{Cursor: &cursor, Limit: 5, SortBy: models.SortByName, OrderBy: models.OrderAsc},
			wantCond: " AND (name, id) > (SELECT name, id FROM dev_servers WHERE id = $2)",
			wantTail: " ORDER BY name ASC, id ASC LIMIT $3",
			wantArgs: 2,
		},
		{
			name:     "updated at falls back to created at",
			page:     models.PageRequest{Cursor: &cursor, Limit: 5, SortBy: models.SortByUpdatedAt, OrderBy: models.OrderDesc},
			wantCond: " AND (COALESCE(updated_at, created_at), id) < (SELECT COALESCE(updated_at, created_at), id FROM dev_servers WHERE id = $2)",
			wantTail: " ORDER BY COALESCE(updated_at, created_at) DESC, id DESC LIMIT $3",
			wantArgs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, tail, args := keyset("dev_servers", tt.page, 2)
			if cond != tt.wantCond {
				t.Errorf("cond = %q\nwant   %q", cond, tt.wantCond)
			}
			if tail != tt.wantTail {
				t.Errorf("tail = %q\nwant   %q", tail, tt.wantTail)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %v", args)
			}
			if args[len(args)-1] != tt.page.Limit {
				t.Errorf("last arg = %v, want limit %d", args[len(args)-1], tt.page.Limit)
			}
		})
	}
}

func TestRenderSchemaUsesPrefix(t *testing.T) {
	ddl, err := RenderSchema(NewTableNames("test_"))
	if err != nil {
		t.Fatalf("RenderSchema() error = %v", err)
	}

	for _, table := range []string{"test_users", "test_accounts", "test_workspaces", "test_folders", "test_notes", "test_servers"} {
		if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("schema missing table %s", table)
		}
	}
	if strings.Contains(ddl, "{{") {
		t.Error("schema has unrendered placeholders")
	}
}
