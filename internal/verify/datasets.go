package verify

import (
	"sort"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
)

// Datasets checks referential coverage between the two curated CSVs: every
// country code referenced by an airport must exist among the curated
// countries. Countries with zero airports are reported but are not an
// error.
func Datasets(countries []dataset.Country, airports []dataset.Airport) *Report {
	report := &Report{}

	names := make(map[string]string, len(countries))
	for _, c := range countries {
		if c.Code == "" {
			continue
		}
		name := c.Name
		if name == "" {
			name = c.Code
		}
		names[c.Code] = name
	}

	airportCounts := make(map[string]int)
	for _, a := range airports {
		if a.CountryCode != "" {
			airportCounts[a.CountryCode]++
		}
	}

	report.Infof("Loaded %d countries and %d airports.", len(names), len(airports))

	var missing []string
	for code := range airportCounts {
		if _, ok := names[code]; !ok {
			missing = append(missing, code)
		}
	}
	sort.Strings(missing)

	if len(missing) > 0 {
		report.Failf("Countries referenced by airports but missing from curated countries:")
		for _, code := range missing {
			report.Itemf("%s", code)
		}
	} else {
		report.Infof("All airport country codes are present in curated countries.")
	}

	var withoutAirports []string
	for code := range names {
		if airportCounts[code] == 0 {
			withoutAirports = append(withoutAirports, code)
		}
	}
	sort.Strings(withoutAirports)

	if len(withoutAirports) > 0 {
		report.Infof("Countries with no curated airports:")
		for _, code := range withoutAirports {
			report.Itemf("%s – %s", code, names[code])
		}
		report.Infof("Total without airports: %d", len(withoutAirports))
	} else {
		report.Infof("Every curated country has at least one curated airport.")
	}

	return report
}
