package verify

import (
	"sort"
	"strings"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
	"github.com/NourAshoush/GlobeLogAssets/internal/timezone"
)

const maxMismatchDetails = 10

// Timezones reports how much of the curated airport set the resolved
// timezone map covers, and flags airports whose timezone source disagrees
// with the curated country code. All findings are informational: coverage
// gaps are data quality, not pipeline breakage.
func Timezones(airports []dataset.Airport, resolved timezone.Map) *Report {
	report := &Report{}

	var covered, missing []string
	type countryMismatch struct {
		iata, curated, source string
	}
	var mismatched []countryMismatch

	for _, airport := range airports {
		entry, ok := resolved[airport.IATA]
		if !ok || entry.Timezone == "" {
			missing = append(missing, airport.IATA)
			continue
		}
		covered = append(covered, airport.IATA)
		if entry.CountryCode != "" && entry.CountryCode != airport.CountryCode {
			mismatched = append(mismatched, countryMismatch{
				iata:    airport.IATA,
				curated: airport.CountryCode,
				source:  entry.CountryCode,
			})
		}
	}
	sort.Strings(missing)

	report.Infof("Curated airports: %d", len(airports))
	report.Infof("Timezones available: %d (deduped)", len(resolved))
	if len(airports) > 0 {
		pct := float64(len(covered)) / float64(len(airports)) * 100
		report.Infof("Covered airports: %d (%.2f%%)", len(covered), pct)
	} else {
		report.Infof("Covered airports: 0")
	}

	report.Infof("Missing airports: %d", len(missing))
	if len(missing) > 0 {
		report.Infof("Missing codes: %s", strings.Join(missing, ", "))
	}

	report.Infof("Country mismatches: %d", len(mismatched))
	for i, m := range mismatched {
		if i == maxMismatchDetails {
			report.Itemf("… and %d more", len(mismatched)-maxMismatchDetails)
			break
		}
		report.Itemf("%s: curated=%s, tz_source=%s", m.iata, m.curated, m.source)
	}

	return report
}
