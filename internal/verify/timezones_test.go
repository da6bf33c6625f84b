package verify

import (
	"strings"
	"testing"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
	"github.com/NourAshoush/GlobeLogAssets/internal/timezone"
)

func TestTimezonesFullCoverage(t *testing.T) {
	airports := []dataset.Airport{
		{IATA: "CDG", CountryCode: "FR"},
	}
	resolved := timezone.Map{
		"CDG": {Timezone: "Europe/Paris", CountryCode: "FR"},
	}

	report := Timezones(airports, resolved)

	if !report.OK() {
		t.Errorf("report failed:\n%s", reportText(report))
	}
	text := reportText(report)
	if !strings.Contains(text, "Covered airports: 1 (100.00%)") {
		t.Errorf("missing coverage line in:\n%s", text)
	}
	if !strings.Contains(text, "Missing airports: 0") {
		t.Errorf("missing missing-count line in:\n%s", text)
	}
}

func TestTimezonesMissingCodesListed(t *testing.T) {
	airports := []dataset.Airport{
		{IATA: "CDG", CountryCode: "FR"},
		{IATA: "JFK", CountryCode: "US"},
	}
	resolved := timezone.Map{
		"CDG": {Timezone: "Europe/Paris", CountryCode: "FR"},
	}

	report := Timezones(airports, resolved)

	// Coverage gaps are data quality, never a pipeline failure.
	if !report.OK() {
		t.Errorf("coverage gaps must stay informational:\n%s", reportText(report))
	}
	if !strings.Contains(reportText(report), "Missing codes: JFK") {
		t.Errorf("JFK not listed as missing in:\n%s", reportText(report))
	}
}

func TestTimezonesCountryMismatchFlagged(t *testing.T) {
	airports := []dataset.Airport{
		{IATA: "GIB", CountryCode: "GI"},
	}
	resolved := timezone.Map{
		"GIB": {Timezone: "Europe/Gibraltar", CountryCode: "ES"},
	}

	report := Timezones(airports, resolved)

	if !report.OK() {
		t.Errorf("country mismatches must stay informational:\n%s", reportText(report))
	}
	if !strings.Contains(reportText(report), "GIB: curated=GI, tz_source=ES") {
		t.Errorf("mismatch detail not reported in:\n%s", reportText(report))
	}
}
