package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Column layouts for the curated CSV artifacts. Readers locate columns by
// header name, so extra upstream columns are ignored and missing ones
// degrade to empty strings.
var (
	countryColumns   = []string{"code", "name", "continent"}
	continentColumns = []string{"code", "name"}
	airportColumns   = []string{
		"iata", "name", "latitude_deg", "longitude_deg", "continent",
		"iso_country", "municipality", "timezone", "icao_code", "gps_code",
	}
)

// record is a single CSV row with access by header name.
type record struct {
	index  map[string]int
	fields []string
}

// get returns the trimmed value of the named column, or "" if the column is
// absent from the file or the row is short.
func (r record) get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func readRecords(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}

	records := make([]record, 0, len(rows)-1)
	for _, fields := range rows[1:] {
		records = append(records, record{index: index, fields: fields})
	}
	return records, nil
}

func writeRecords(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// ReadCountries reads country rows from either the raw upstream extract or
// a curated file; both use the code/name/continent column names.
func ReadCountries(path string) ([]Country, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	countries := make([]Country, 0, len(records))
	for _, r := range records {
		countries = append(countries, Country{
			Code:      r.get("code"),
			Name:      r.get("name"),
			Continent: r.get("continent"),
		})
	}
	return countries, nil
}

// WriteCountries writes curated countries with columns code,name,continent.
func WriteCountries(path string, countries []Country) error {
	rows := make([][]string, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, []string{c.Code, c.Name, c.Continent})
	}
	return writeRecords(path, countryColumns, rows)
}

// ReadContinents reads a curated continents file.
func ReadContinents(path string) ([]Continent, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	continents := make([]Continent, 0, len(records))
	for _, r := range records {
		continents = append(continents, Continent{
			Code: r.get("code"),
			Name: r.get("name"),
		})
	}
	return continents, nil
}

// WriteContinents writes curated continents with columns code,name.
func WriteContinents(path string, continents []Continent) error {
	rows := make([][]string, 0, len(continents))
	for _, c := range continents {
		rows = append(rows, []string{c.Code, c.Name})
	}
	return writeRecords(path, continentColumns, rows)
}

// ReadRawAirports reads the upstream airports.csv extract.
func ReadRawAirports(path string) ([]RawAirport, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	airports := make([]RawAirport, 0, len(records))
	for _, r := range records {
		airports = append(airports, RawAirport{
			Type:         r.get("type"),
			IATA:         r.get("iata_code"),
			Name:         r.get("name"),
			LatitudeDeg:  r.get("latitude_deg"),
			LongitudeDeg: r.get("longitude_deg"),
			Continent:    r.get("continent"),
			ISOCountry:   r.get("iso_country"),
			Municipality: r.get("municipality"),
			ICAOCode:     r.get("icao_code"),
			GPSCode:      r.get("gps_code"),
		})
	}
	return airports, nil
}

// ReadAirports reads a curated airports file.
func ReadAirports(path string) ([]Airport, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	airports := make([]Airport, 0, len(records))
	for _, r := range records {
		airports = append(airports, Airport{
			IATA:         r.get("iata"),
			Name:         r.get("name"),
			LatitudeDeg:  r.get("latitude_deg"),
			LongitudeDeg: r.get("longitude_deg"),
			Continent:    r.get("continent"),
			CountryCode:  r.get("iso_country"),
			Municipality: r.get("municipality"),
			Timezone:     r.get("timezone"),
			ICAOCode:     r.get("icao_code"),
			GPSCode:      r.get("gps_code"),
		})
	}
	return airports, nil
}

// WriteAirports writes curated airports in the canonical column order.
func WriteAirports(path string, airports []Airport) error {
	rows := make([][]string, 0, len(airports))
	for _, a := range airports {
		rows = append(rows, []string{
			a.IATA, a.Name, a.LatitudeDeg, a.LongitudeDeg, a.Continent,
			a.CountryCode, a.Municipality, a.Timezone, a.ICAOCode, a.GPSCode,
		})
	}
	return writeRecords(path, airportColumns, rows)
}
