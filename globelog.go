// Package globelog curates the public airport/country/continent dataset:
// it normalizes raw upstream extracts into curated CSVs, resolves
// per-airport timezones from a bulk feed plus a manual override layer,
// builds a SQLite store with enforced referential integrity and a
// full-text airport search index, and cross-checks every stage against the
// others.
//
// Each entry point is one pipeline stage; the globelog CLI is a thin shell
// over this package. Stages communicate only through the files under
// Paths.DataDir, so they can run as independent processes:
//
//	countries.csv, airports.csv, airport-timezones.json  (upstream inputs)
//	  → CurateCountries, CurateAirports                  (curated CSVs)
//	  → BuildStore                                       (globelog.sqlite)
//	  → VerifyDatasets / VerifyStore / VerifyTimezones / VerifyFlags
package globelog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
	"github.com/NourAshoush/GlobeLogAssets/internal/normalize"
	"github.com/NourAshoush/GlobeLogAssets/internal/store"
	"github.com/NourAshoush/GlobeLogAssets/internal/timezone"
	"github.com/NourAshoush/GlobeLogAssets/internal/verify"
)

// Paths locates every file the pipeline reads or writes. The zero value is
// usable; empty directories fall back to ./data and ./flags.
type Paths struct {
	DataDir  string
	FlagsDir string
}

// DefaultPaths returns the conventional repository layout.
func DefaultPaths() Paths {
	return Paths{DataDir: "data", FlagsDir: "flags"}
}

func (p Paths) withDefaults() Paths {
	if p.DataDir == "" {
		p.DataDir = "data"
	}
	if p.FlagsDir == "" {
		p.FlagsDir = "flags"
	}
	return p
}

func (p Paths) CountriesCSV() string  { return filepath.Join(p.DataDir, "countries.csv") }
func (p Paths) AirportsCSV() string   { return filepath.Join(p.DataDir, "airports.csv") }
func (p Paths) TimezonesJSON() string { return filepath.Join(p.DataDir, "airport-timezones.json") }
func (p Paths) TimezoneOverridesJSON() string {
	return filepath.Join(p.DataDir, "corrections", "timezone_overrides.json")
}
func (p Paths) CuratedCountriesCSV() string  { return filepath.Join(p.DataDir, "curated_countries.csv") }
func (p Paths) CuratedContinentsCSV() string {
	return filepath.Join(p.DataDir, "curated_continents.csv")
}
func (p Paths) CuratedAirportsCSV() string { return filepath.Join(p.DataDir, "curated_airports.csv") }
func (p Paths) StoreDB() string            { return filepath.Join(p.DataDir, "globelog.sqlite") }

// Config is shared by every pipeline entry point. A nil Logger discards
// all log output, so library callers only opt in to logging.
type Config struct {
	Logger *slog.Logger
	Paths  Paths
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// CountriesResult summarizes one country curation run.
type CountriesResult struct {
	Read       int
	Countries  int
	Continents int
}

// CurateCountries normalizes the raw countries extract into the curated
// country and continent CSVs.
func CurateCountries(cfg Config) (*CountriesResult, error) {
	paths := cfg.Paths.withDefaults()

	raw, err := dataset.ReadCountries(paths.CountriesCSV())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing %s: place the upstream countries extract in %s", paths.CountriesCSV(), paths.DataDir)
		}
		return nil, err
	}

	opts := normalize.DefaultCountryOptions()
	countries := normalize.CurateCountries(raw, opts)
	continents := normalize.DeriveContinents(countries, opts)

	if err := dataset.WriteCountries(paths.CuratedCountriesCSV(), countries); err != nil {
		return nil, err
	}
	if err := dataset.WriteContinents(paths.CuratedContinentsCSV(), continents); err != nil {
		return nil, err
	}

	cfg.logger().Debug("curated countries written",
		"read", len(raw), "countries", len(countries), "continents", len(continents))
	return &CountriesResult{Read: len(raw), Countries: len(countries), Continents: len(continents)}, nil
}

// AirportsResult summarizes one airport curation run.
type AirportsResult struct {
	Stats        normalize.AirportStats
	TopCountries []normalize.CountryCount
	Sample       []dataset.Airport
}

// CurateAirports filters the raw airports extract, attaches resolved
// timezones and writes the curated airport CSV.
func CurateAirports(cfg Config) (*AirportsResult, error) {
	paths := cfg.Paths.withDefaults()

	raw, err := dataset.ReadRawAirports(paths.AirportsCSV())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing %s: place the upstream airports extract in %s", paths.AirportsCSV(), paths.DataDir)
		}
		return nil, err
	}

	resolved, err := timezone.Load(paths.TimezonesJSON(), paths.TimezoneOverridesJSON())
	if err != nil {
		return nil, err
	}

	airports, stats := normalize.CurateAirports(raw, resolved, normalize.DefaultAirportOptions())
	if err := dataset.WriteAirports(paths.CuratedAirportsCSV(), airports); err != nil {
		return nil, err
	}

	sample := airports
	if len(sample) > 5 {
		sample = sample[:5]
	}

	cfg.logger().Debug("curated airports written",
		"read", stats.Read, "kept", stats.Kept, "missing_iata", stats.MissingIATA)
	return &AirportsResult{
		Stats:        stats,
		TopCountries: normalize.TopCountries(airports, 5),
		Sample:       sample,
	}, nil
}

// BuildResult summarizes one store build.
type BuildResult struct {
	Path       string
	Continents int
	Countries  int
	Airports   int
}

// BuildStore rebuilds the SQLite store from the three curated CSVs. Any
// existing store file is replaced; on error the output file is removed so a
// partial build is never left looking complete.
func BuildStore(ctx context.Context, cfg Config) (*BuildResult, error) {
	paths := cfg.Paths.withDefaults()

	if err := requireFile(paths.CuratedCountriesCSV(), "run `globelog countries` first"); err != nil {
		return nil, err
	}
	if err := requireFile(paths.CuratedContinentsCSV(), "run `globelog countries` first"); err != nil {
		return nil, err
	}
	if err := requireFile(paths.CuratedAirportsCSV(), "run `globelog airports` first"); err != nil {
		return nil, err
	}

	continents, err := dataset.ReadContinents(paths.CuratedContinentsCSV())
	if err != nil {
		return nil, err
	}
	countries, err := dataset.ReadCountries(paths.CuratedCountriesCSV())
	if err != nil {
		return nil, err
	}
	airports, err := dataset.ReadAirports(paths.CuratedAirportsCSV())
	if err != nil {
		return nil, err
	}

	dbPath := paths.StoreDB()
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove existing store: %w", err)
	}

	client, err := store.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	builder, err := store.NewBuilder(store.BuilderConfig{Logger: cfg.logger(), Client: client})
	if err != nil {
		client.Close()
		return nil, err
	}

	if err := builder.Build(ctx, continents, countries, airports); err != nil {
		client.Close()
		os.Remove(dbPath)
		return nil, err
	}
	if err := client.Close(); err != nil {
		return nil, err
	}

	return &BuildResult{
		Path:       dbPath,
		Continents: len(continents),
		Countries:  len(countries),
		Airports:   len(airports),
	}, nil
}

// VerifyDatasets checks curated airports against curated countries.
func VerifyDatasets(cfg Config) (*verify.Report, error) {
	paths := cfg.Paths.withDefaults()

	if err := requireFile(paths.CuratedCountriesCSV(), "run `globelog countries` first"); err != nil {
		return nil, err
	}
	if err := requireFile(paths.CuratedAirportsCSV(), "run `globelog airports` first"); err != nil {
		return nil, err
	}

	countries, err := dataset.ReadCountries(paths.CuratedCountriesCSV())
	if err != nil {
		return nil, err
	}
	airports, err := dataset.ReadAirports(paths.CuratedAirportsCSV())
	if err != nil {
		return nil, err
	}
	return verify.Datasets(countries, airports), nil
}

// VerifyStore compares the curated CSVs against the built store.
func VerifyStore(ctx context.Context, cfg Config) (*verify.Report, error) {
	paths := cfg.Paths.withDefaults()

	if err := requireFile(paths.CuratedCountriesCSV(), "run `globelog countries` first"); err != nil {
		return nil, err
	}
	if err := requireFile(paths.CuratedAirportsCSV(), "run `globelog airports` first"); err != nil {
		return nil, err
	}
	if err := requireFile(paths.StoreDB(), "run `globelog build` first"); err != nil {
		return nil, err
	}

	countries, err := dataset.ReadCountries(paths.CuratedCountriesCSV())
	if err != nil {
		return nil, err
	}
	airports, err := dataset.ReadAirports(paths.CuratedAirportsCSV())
	if err != nil {
		return nil, err
	}

	client, err := store.Open(ctx, paths.StoreDB())
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return verify.Store(ctx, client, countries, airports)
}

// VerifyTimezones checks timezone coverage of the curated airports against
// the resolved timezone map.
func VerifyTimezones(cfg Config) (*verify.Report, error) {
	paths := cfg.Paths.withDefaults()

	if err := requireFile(paths.CuratedAirportsCSV(), "run `globelog airports` first"); err != nil {
		return nil, err
	}
	if err := requireFile(paths.TimezonesJSON(), "place the bulk timezone feed in "+paths.DataDir); err != nil {
		return nil, err
	}

	airports, err := dataset.ReadAirports(paths.CuratedAirportsCSV())
	if err != nil {
		return nil, err
	}
	resolved, err := timezone.Load(paths.TimezonesJSON(), paths.TimezoneOverridesJSON())
	if err != nil {
		return nil, err
	}
	return verify.Timezones(airports, resolved), nil
}

// VerifyFlags checks flag-asset coverage of the curated countries and
// normalizes asset filenames to uppercase ISO codes.
func VerifyFlags(cfg Config) (*verify.Report, error) {
	paths := cfg.Paths.withDefaults()

	if err := requireFile(paths.CuratedCountriesCSV(), "run `globelog countries` first"); err != nil {
		return nil, err
	}

	countries, err := dataset.ReadCountries(paths.CuratedCountriesCSV())
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(countries))
	for _, c := range countries {
		codes = append(codes, c.Code)
	}

	return verify.Flags(verify.FlagsConfig{Logger: cfg.logger(), Dir: paths.FlagsDir}, codes)
}

// Inspect previews every table in the built store.
func Inspect(ctx context.Context, cfg Config, rowLimit int) ([]store.TablePreview, error) {
	paths := cfg.Paths.withDefaults()

	if err := requireFile(paths.StoreDB(), "run `globelog build` first"); err != nil {
		return nil, err
	}

	client, err := store.Open(ctx, paths.StoreDB())
	if err != nil {
		return nil, err
	}
	defer client.Close()

	tables, err := client.Tables(ctx)
	if err != nil {
		return nil, err
	}

	previews := make([]store.TablePreview, 0, len(tables))
	for _, table := range tables {
		preview, err := client.Preview(ctx, table, rowLimit)
		if err != nil {
			return nil, err
		}
		previews = append(previews, *preview)
	}
	return previews, nil
}

func requireFile(path, hint string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("missing %s: %s", path, hint)
		}
		return err
	}
	return nil
}
