package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

var schemaTemplate = template.Must(template.New("schema").Parse(schemaSQL))

// RenderSchema returns the CREATE statements for the prefixed tables
func RenderSchema(tables *TableNames) (string, error) {
	var b strings.Builder
	if err := schemaTemplate.Execute(&b, tables); err != nil {
		return "", fmt.Errorf("render schema: %w", err)
	}
	return b.String(), nil
}

// EnsureSchema creates any missing table. It never alters existing ones.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	ddl, err := RenderSchema(tables)
	if err != nil {
		return err
	}
	// simple protocol allows several statements in one Exec
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Conn().PgConn().Exec(ctx, ddl).ReadAll(); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// DropSchema drops every prefixed table, children first
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Notes, tables.Folders, tables.Servers, tables.Workspaces, tables.Accounts, tables.Users} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}
