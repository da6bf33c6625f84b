// Package store builds and reads the GlobeLog SQLite store: the relational
// continent/country/airport tables plus the airport full-text search index.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Client manages the connection to the SQLite store. Foreign-key
// enforcement is switched on for every pooled connection via the DSN.
type Client struct {
	db *sql.DB
}

// Open opens the store at path and verifies the connection.
func Open(ctx context.Context, path string) (*Client, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// DB returns the underlying database connection.
func (c *Client) DB() *sql.DB {
	return c.db
}
