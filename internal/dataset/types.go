// Package dataset defines the curated record types and the CSV codecs for
// the files exchanged between pipeline stages.
package dataset

// Continent is a curated continent row (curated_continents.csv).
type Continent struct {
	Code string
	Name string
}

// Country is a curated country row (curated_countries.csv). Continent holds
// the raw two-letter continent code exactly as it appeared upstream.
type Country struct {
	Code      string
	Name      string
	Continent string
}

// RawAirport is a row from the upstream airports.csv extract. Only the
// columns the pipeline consumes are carried; everything stays a string.
type RawAirport struct {
	Type         string
	IATA         string
	Name         string
	LatitudeDeg  string
	LongitudeDeg string
	Continent    string
	ISOCountry   string
	Municipality string
	ICAOCode     string
	GPSCode      string
}

// Airport is a curated airport row (curated_airports.csv). Latitude and
// longitude remain raw strings here; the store builder performs the final
// numeric coercion.
type Airport struct {
	IATA         string
	Name         string
	LatitudeDeg  string
	LongitudeDeg string
	Continent    string
	CountryCode  string
	Municipality string
	Timezone     string
	ICAOCode     string
	GPSCode      string
}
