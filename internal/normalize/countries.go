// Package normalize turns raw upstream extracts into curated, deterministic
// country, continent and airport tables.
package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
)

var (
	parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)
	whitespaceRunRe = regexp.MustCompile(`\s{2,}`)
)

// CountryOptions holds the fixed lookup tables for country curation. Zero
// values fall back to the defaults so tests can swap single tables.
type CountryOptions struct {
	// ExcludedCodes are non-standard alpha-2 codes dropped entirely.
	ExcludedCodes map[string]bool

	// NameOverrides maps a country code to its exact display name,
	// bypassing the generic cleanup.
	NameOverrides map[string]string

	// ContinentNames maps continent codes to friendly names; unknown codes
	// keep the raw code as the name.
	ContinentNames map[string]string
}

// DefaultCountryOptions returns the production lookup tables.
func DefaultCountryOptions() CountryOptions {
	return CountryOptions{
		ExcludedCodes: map[string]bool{"XP": true},
		NameOverrides: map[string]string{
			"CC": "Cocos Islands",
			"EH": "Western Sahara",
			"PS": "Palestine",
			"SH": "Saint Helena & Tristan da Cunha",
		},
		ContinentNames: map[string]string{
			"AF": "Africa",
			"AN": "Antarctica",
			"AS": "Asia",
			"EU": "Europe",
			"NA": "North America",
			"OC": "Oceania",
			"SA": "South America",
		},
	}
}

// CleanCountryName returns the display name for a country: an exact
// override when one exists for the code, otherwise the raw name with
// parenthetical qualifiers stripped and whitespace runs collapsed.
func CleanCountryName(code, name string, opts CountryOptions) string {
	if override, ok := opts.NameOverrides[code]; ok {
		return override
	}
	cleaned := strings.TrimSpace(parentheticalRe.ReplaceAllString(name, ""))
	return whitespaceRunRe.ReplaceAllString(cleaned, " ")
}

// CurateCountries filters and cleans raw country rows. Rows with an empty
// or excluded code are dropped; the continent code passes through verbatim.
func CurateCountries(rows []dataset.Country, opts CountryOptions) []dataset.Country {
	curated := make([]dataset.Country, 0, len(rows))
	for _, row := range rows {
		code := strings.TrimSpace(row.Code)
		if code == "" || opts.ExcludedCodes[code] {
			continue
		}
		curated = append(curated, dataset.Country{
			Code:      code,
			Name:      CleanCountryName(code, strings.TrimSpace(row.Name), opts),
			Continent: strings.TrimSpace(row.Continent),
		})
	}
	return curated
}

// DeriveContinents returns exactly the continents referenced by at least
// one curated country, sorted by (name, code) for deterministic output.
func DeriveContinents(countries []dataset.Country, opts CountryOptions) []dataset.Continent {
	seen := make(map[string]bool)
	continents := make([]dataset.Continent, 0, len(opts.ContinentNames))
	for _, c := range countries {
		code := c.Continent
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		name, ok := opts.ContinentNames[code]
		if !ok {
			name = code
		}
		continents = append(continents, dataset.Continent{Code: code, Name: name})
	}
	sort.Slice(continents, func(i, j int) bool {
		if continents[i].Name != continents[j].Name {
			return continents[i].Name < continents[j].Name
		}
		return continents[i].Code < continents[j].Code
	})
	return continents
}
