package normalize

import (
	"sort"
	"strings"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
	"github.com/NourAshoush/GlobeLogAssets/internal/timezone"
)

// AirportOptions holds the filtering policy for airport curation.
type AirportOptions struct {
	// AllowedTypes is the set of source "type" values that survive
	// curation.
	AllowedTypes map[string]bool
}

// DefaultAirportOptions keeps medium and large airports only.
func DefaultAirportOptions() AirportOptions {
	return AirportOptions{
		AllowedTypes: map[string]bool{
			"medium_airport": true,
			"large_airport":  true,
		},
	}
}

// AirportStats summarizes one curation pass for the run report.
type AirportStats struct {
	Read                int
	Kept                int
	TypeCounts          map[string]int
	MissingIATA         int
	MissingMunicipality int
	MissingTimezone     int
}

// CountryCount is an airport tally for a single country code.
type CountryCount struct {
	Code  string
	Count int
}

// CurateAirports filters raw airport rows, attaches resolved timezones and
// returns the curated set sorted by (iata, name). Malformed rows never
// error: absent fields degrade to empty strings and coordinates stay raw
// strings for the store builder to coerce.
func CurateAirports(rows []dataset.RawAirport, tz timezone.Map, opts AirportOptions) ([]dataset.Airport, AirportStats) {
	stats := AirportStats{
		Read:       len(rows),
		TypeCounts: make(map[string]int),
	}

	curated := make([]dataset.Airport, 0, len(rows))
	for _, row := range rows {
		airportType := strings.TrimSpace(row.Type)
		if !opts.AllowedTypes[airportType] {
			continue
		}

		iata := strings.TrimSpace(row.IATA)
		if iata == "" {
			stats.MissingIATA++
			continue
		}

		airport := dataset.Airport{
			IATA:         iata,
			Name:         strings.TrimSpace(row.Name),
			LatitudeDeg:  strings.TrimSpace(row.LatitudeDeg),
			LongitudeDeg: strings.TrimSpace(row.LongitudeDeg),
			Continent:    strings.TrimSpace(row.Continent),
			CountryCode:  strings.TrimSpace(row.ISOCountry),
			Municipality: strings.TrimSpace(row.Municipality),
			Timezone:     tz[iata].Timezone,
			ICAOCode:     strings.TrimSpace(row.ICAOCode),
			GPSCode:      strings.TrimSpace(row.GPSCode),
		}

		if airport.Municipality == "" {
			stats.MissingMunicipality++
		}
		if airport.Timezone == "" {
			stats.MissingTimezone++
		}
		stats.TypeCounts[airportType]++
		curated = append(curated, airport)
	}

	sort.Slice(curated, func(i, j int) bool {
		if curated[i].IATA != curated[j].IATA {
			return curated[i].IATA < curated[j].IATA
		}
		return curated[i].Name < curated[j].Name
	})

	stats.Kept = len(curated)
	return curated, stats
}

// TopCountries returns the n country codes with the most curated airports,
// largest first, ties broken by code.
func TopCountries(airports []dataset.Airport, n int) []CountryCount {
	counts := make(map[string]int)
	for _, a := range airports {
		if a.CountryCode != "" {
			counts[a.CountryCode]++
		}
	}

	top := make([]CountryCount, 0, len(counts))
	for code, count := range counts {
		top = append(top, CountryCount{Code: code, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Code < top[j].Code
	})

	if len(top) > n {
		top = top[:n]
	}
	return top
}
