package verify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
	"github.com/NourAshoush/GlobeLogAssets/internal/store"
)

const (
	maxMismatchLines = 10
	searchSamples    = 5
)

type dbAirport struct {
	Name         string
	Municipality string
	Continent    string
	CountryCode  string
	ICAOCode     string
	GPSCode      string
}

// Store compares the curated CSVs against the built store field-by-field.
// Airports or countries present on only one side, and any field mismatch,
// fail the check; a few sample full-text queries run as a smoke test.
func Store(ctx context.Context, client *store.Client, countries []dataset.Country, airports []dataset.Airport) (*Report, error) {
	report := &Report{}

	dbAirports, err := loadStoreAirports(ctx, client)
	if err != nil {
		return nil, err
	}
	dbCountries, err := loadStoreCountries(ctx, client)
	if err != nil {
		return nil, err
	}

	csvAirports := make(map[string]dataset.Airport, len(airports))
	for _, a := range airports {
		csvAirports[a.IATA] = a
	}
	csvCountries := make(map[string]bool, len(countries))
	for _, c := range countries {
		csvCountries[c.Code] = true
	}

	report.Infof("Curated airports CSV rows: %d", len(csvAirports))
	report.Infof("Airports in database: %d", len(dbAirports))

	reportSetDiff(report, "airports missing from database", keysNotIn(csvAirports, dbAirports))
	reportSetDiff(report, "extra airports in database", keysNotIn(dbAirports, csvAirports))

	mismatches := compareAirports(csvAirports, dbAirports)
	report.Infof("Mismatched airport fields: %d", len(mismatches))
	if len(mismatches) > 0 {
		report.Failf("Field mismatches between CSV and database:")
		for i, line := range mismatches {
			if i == maxMismatchLines {
				report.Itemf("… and %d more", len(mismatches)-maxMismatchLines)
				break
			}
			report.Itemf("%s", line)
		}
	}

	report.Infof("Curated countries CSV rows: %d", len(csvCountries))
	report.Infof("Countries in database: %d", len(dbCountries))
	reportSetDiff(report, "countries missing from database", keysNotIn(csvCountries, dbCountries))
	reportSetDiff(report, "extra countries in database", keysNotIn(dbCountries, csvCountries))

	sampleSearches(ctx, client, report, airports)

	return report, nil
}

func loadStoreAirports(ctx context.Context, client *store.Client) (map[string]dbAirport, error) {
	rows, err := client.DB().QueryContext(ctx, `
		SELECT iata, name, IFNULL(municipality, ''), continent_code,
		       country_code, IFNULL(icao_code, ''), IFNULL(gps_code, '')
		FROM airport
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read airports from store: %w", err)
	}
	defer rows.Close()

	airports := make(map[string]dbAirport)
	for rows.Next() {
		var iata string
		var a dbAirport
		if err := rows.Scan(&iata, &a.Name, &a.Municipality, &a.Continent, &a.CountryCode, &a.ICAOCode, &a.GPSCode); err != nil {
			return nil, err
		}
		airports[iata] = a
	}
	return airports, rows.Err()
}

func loadStoreCountries(ctx context.Context, client *store.Client) (map[string]bool, error) {
	rows, err := client.DB().QueryContext(ctx, "SELECT code FROM country")
	if err != nil {
		return nil, fmt.Errorf("failed to read countries from store: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes[code] = true
	}
	return codes, rows.Err()
}

// compareAirports diffs the fields shared by the CSV and the store for
// every airport present on both sides. Coordinates and timezone are
// excluded: the store coerces those on load.
func compareAirports(csvAirports map[string]dataset.Airport, dbAirports map[string]dbAirport) []string {
	var iatas []string
	for iata := range csvAirports {
		if _, ok := dbAirports[iata]; ok {
			iatas = append(iatas, iata)
		}
	}
	sort.Strings(iatas)

	var mismatches []string
	for _, iata := range iatas {
		csvRow := csvAirports[iata]
		dbRow := dbAirports[iata]

		fields := []struct {
			name, csv, db string
		}{
			{"name", csvRow.Name, dbRow.Name},
			{"municipality", csvRow.Municipality, dbRow.Municipality},
			{"continent_code", csvRow.Continent, dbRow.Continent},
			{"country_code", csvRow.CountryCode, dbRow.CountryCode},
			{"icao_code", csvRow.ICAOCode, dbRow.ICAOCode},
			{"gps_code", csvRow.GPSCode, dbRow.GPSCode},
		}
		for _, f := range fields {
			csvValue := strings.TrimSpace(f.csv)
			dbValue := strings.TrimSpace(f.db)
			if csvValue != dbValue {
				mismatches = append(mismatches,
					fmt.Sprintf("%s: %s mismatch CSV='%s' DB='%s'", iata, f.name, csvValue, dbValue))
			}
		}
	}
	return mismatches
}

func keysNotIn[V1, V2 any](from map[string]V1, in map[string]V2) []string {
	var missing []string
	for key := range from {
		if _, ok := in[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func reportSetDiff(report *Report, label string, codes []string) {
	if len(codes) == 0 {
		report.Infof("No %s.", label)
		return
	}
	report.Failf("Found %d %s: %s", len(codes), label, strings.Join(codes, ", "))
}

// sampleSearches runs a handful of full-text queries against the search
// index, one per leading name word of the first few curated airports. The
// results are informational; an unreadable index is a failure.
func sampleSearches(ctx context.Context, client *store.Client, report *Report, airports []dataset.Airport) {
	report.Infof("Search index sample queries:")
	samples := airports
	if len(samples) > searchSamples {
		samples = samples[:searchSamples]
	}
	for _, airport := range samples {
		term := strings.Fields(airport.Name)
		if len(term) == 0 {
			continue
		}
		hits, err := client.SearchAirports(ctx, term[0], 3)
		if err != nil {
			report.Failf("search for '%s' failed: %v", term[0], err)
			continue
		}
		formatted := make([]string, 0, len(hits))
		for _, hit := range hits {
			formatted = append(formatted, hit.IATA+":"+hit.Name)
		}
		if len(formatted) == 0 {
			report.Itemf("'%s' -> no hits", term[0])
			continue
		}
		report.Itemf("'%s' -> %s", term[0], strings.Join(formatted, ", "))
	}
}
