package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
)

const schemaSQL = `
DROP TABLE IF EXISTS airport_search;
DROP TABLE IF EXISTS airport;
DROP TABLE IF EXISTS country;
DROP TABLE IF EXISTS continent;

CREATE TABLE continent (
    code TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE country (
    code TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    continent_code TEXT NOT NULL REFERENCES continent(code) ON UPDATE CASCADE
);

CREATE TABLE airport (
    iata TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    municipality TEXT,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL,
    continent_code TEXT NOT NULL REFERENCES continent(code),
    country_code TEXT NOT NULL REFERENCES country(code),
    timezone TEXT,
    icao_code TEXT,
    gps_code TEXT
);

CREATE INDEX idx_airport_country ON airport(country_code);
CREATE INDEX idx_airport_municipality ON airport(municipality);
`

const searchIndexSQL = `
CREATE VIRTUAL TABLE airport_search USING fts5(
    name,
    municipality,
    iata,
    icao_code,
    country_code,
    content='airport',
    content_rowid='rowid'
);

INSERT INTO airport_search(rowid, name, municipality, iata, icao_code, country_code)
SELECT rowid, name, IFNULL(municipality, ''), iata, IFNULL(icao_code, ''), country_code
FROM airport;
`

// BuilderConfig configures a store build.
type BuilderConfig struct {
	Logger *slog.Logger
	Client *Client
}

func (cfg *BuilderConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Client == nil {
		return errors.New("client is required")
	}
	return nil
}

// Builder rebuilds the relational store from curated tables. Each build
// drops and recreates everything; there is no incremental path.
type Builder struct {
	log    *slog.Logger
	client *Client
}

func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{log: cfg.Logger, client: cfg.Client}, nil
}

// Build loads the curated tables in dependency order inside a single
// transaction, rebuilds the search index from the airport table, and
// reclaims disk space afterwards. An airport referencing an unknown country
// or continent fails the whole build.
func (b *Builder) Build(ctx context.Context, continents []dataset.Continent, countries []dataset.Country, airports []dataset.Airport) error {
	tx, err := b.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := b.insertContinents(ctx, tx, continents); err != nil {
		return err
	}
	if err := b.insertCountries(ctx, tx, countries); err != nil {
		return err
	}
	if err := b.insertAirports(ctx, tx, airports); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, searchIndexSQL); err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	// Maintenance only; the store is already correct at this point.
	if _, err := b.client.DB().ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("failed to vacuum: %w", err)
	}

	b.log.Debug("store build complete",
		"continents", len(continents),
		"countries", len(countries),
		"airports", len(airports))
	return nil
}

func (b *Builder) insertContinents(ctx context.Context, tx *sql.Tx, continents []dataset.Continent) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO continent(code, name) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare continent insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range continents {
		if _, err := stmt.ExecContext(ctx, c.Code, c.Name); err != nil {
			return fmt.Errorf("failed to insert continent %s: %w", c.Code, err)
		}
	}
	return nil
}

func (b *Builder) insertCountries(ctx context.Context, tx *sql.Tx, countries []dataset.Country) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO country(code, name, continent_code) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare country insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range countries {
		if _, err := stmt.ExecContext(ctx, c.Code, c.Name, c.Continent); err != nil {
			return fmt.Errorf("failed to insert country %s: %w", c.Code, err)
		}
	}
	return nil
}

func (b *Builder) insertAirports(ctx context.Context, tx *sql.Tx, airports []dataset.Airport) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO airport(
			iata, name, municipality, latitude, longitude,
			continent_code, country_code, timezone, icao_code, gps_code
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare airport insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range airports {
		_, err := stmt.ExecContext(ctx,
			a.IATA,
			a.Name,
			nullIfEmpty(a.Municipality),
			coerceFloat(a.LatitudeDeg),
			coerceFloat(a.LongitudeDeg),
			a.Continent,
			a.CountryCode,
			nullIfEmpty(a.Timezone),
			nullIfEmpty(a.ICAOCode),
			nullIfEmpty(a.GPSCode),
		)
		if err != nil {
			return fmt.Errorf("failed to insert airport %s: %w", a.IATA, err)
		}
	}
	return nil
}

// coerceFloat parses a curated coordinate string. Unparsable or absent
// values load as 0.0 rather than failing the build.
func coerceFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0.0
	}
	return f
}

func nullIfEmpty(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
