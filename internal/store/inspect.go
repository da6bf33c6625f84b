package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// previewColumns fixes the column selection for the well-known tables so
// the preview stays readable; other tables fall back to SELECT *.
var previewColumns = map[string]string{
	"airport":   "iata, name, municipality, country_code, timezone, latitude, longitude",
	"country":   "code, name, continent_code",
	"continent": "code, name",
}

// TablePreview is a bounded sample of one table's rows.
type TablePreview struct {
	Table   string
	Columns []string
	Rows    [][]string
}

// SearchHit is one airport matched by a full-text query.
type SearchHit struct {
	IATA string
	Name string
}

// Tables lists the user tables in the store, excluding SQLite internals.
func (c *Client) Tables(ctx context.Context) ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Preview returns up to limit rows of a table. The search index and its
// FTS5 shadow tables are listed by Tables but never previewed.
func (c *Client) Preview(ctx context.Context, table string, limit int) (*TablePreview, error) {
	if strings.HasPrefix(table, "airport_search") {
		return &TablePreview{Table: table}, nil
	}

	cols, ok := previewColumns[table]
	if !ok {
		cols = "*"
	}

	query := fmt.Sprintf("SELECT %s FROM %s LIMIT %d", cols, table, limit)
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to preview table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	preview := &TablePreview{Table: table, Columns: columns}
	values := make([]sql.NullString, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		preview.Rows = append(preview.Rows, row)
	}
	return preview, rows.Err()
}

// SearchAirports runs a full-text term query against the airport search
// index. The term is quoted so FTS operators in the input are literal.
func (c *Client) SearchAirports(ctx context.Context, term string, limit int) ([]SearchHit, error) {
	quoted := `"` + strings.ReplaceAll(term, `"`, `""`) + `"`

	rows, err := c.db.QueryContext(ctx,
		"SELECT iata, name FROM airport_search WHERE airport_search MATCH ? LIMIT ?",
		quoted, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search airports: %w", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var hit SearchHit
		if err := rows.Scan(&hit.IATA, &hit.Name); err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, rows.Err()
}
