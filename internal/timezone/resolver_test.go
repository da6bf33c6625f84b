package timezone

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildDedupFirstWins(t *testing.T) {
	bulk := []BulkEntry{
		{Code: "AAA", Timezone: "Europe/Paris", CountryCode: "FR"},
		{Code: "AAA", Timezone: "Europe/Madrid", CountryCode: "ES"},
	}

	resolved := Build(bulk, nil)

	if got := resolved["AAA"].Timezone; got != "Europe/Paris" {
		t.Errorf("AAA timezone = %q, want first-seen Europe/Paris", got)
	}
}

func TestBuildSkipsEmptyTimezones(t *testing.T) {
	bulk := []BulkEntry{
		{Code: "AAA", Timezone: "", CountryCode: "FR"},
		{Code: "BBB", Timezone: "  ", CountryCode: "FR"},
	}

	resolved := Build(bulk, nil)

	if len(resolved) != 0 {
		t.Errorf("resolved has %d entries, want 0", len(resolved))
	}
}

func TestBuildOverridePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		bulk        []BulkEntry
		overrides   map[string]Entry
		wantTZ      string
		wantCountry string
	}{
		{
			name:        "override replaces bulk entry",
			bulk:        []BulkEntry{{Code: "AAA", Timezone: "Europe/Paris", CountryCode: "FR"}},
			overrides:   map[string]Entry{"AAA": {Timezone: "Europe/Madrid", CountryCode: "ES"}},
			wantTZ:      "Europe/Madrid",
			wantCountry: "ES",
		},
		{
			name:        "override without country keeps bulk country",
			bulk:        []BulkEntry{{Code: "AAA", Timezone: "Europe/Paris", CountryCode: "FR"}},
			overrides:   map[string]Entry{"AAA": {Timezone: "Europe/Madrid"}},
			wantTZ:      "Europe/Madrid",
			wantCountry: "FR",
		},
		{
			name:        "override for unknown code gets empty country",
			bulk:        nil,
			overrides:   map[string]Entry{"AAA": {Timezone: "Europe/Madrid"}},
			wantTZ:      "Europe/Madrid",
			wantCountry: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := Build(tt.bulk, tt.overrides)
			entry := resolved["AAA"]
			if entry.Timezone != tt.wantTZ {
				t.Errorf("timezone = %q, want %q", entry.Timezone, tt.wantTZ)
			}
			if entry.CountryCode != tt.wantCountry {
				t.Errorf("country = %q, want %q", entry.CountryCode, tt.wantCountry)
			}
		})
	}
}

func TestLoadOverridesFormats(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timezone_overrides.json")
	content := `{
		"aaa": "Europe/Madrid",
		"BBB": {"timezone": "Asia/Tokyo", "countryCode": "JP"},
		"CCC": {"timezone": ""},
		"": "Europe/Rome"
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	overrides, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides() error: %v", err)
	}

	if len(overrides) != 2 {
		t.Fatalf("loaded %d overrides, want 2", len(overrides))
	}
	// Keys are upper-cased on load.
	if overrides["AAA"].Timezone != "Europe/Madrid" {
		t.Errorf("AAA = %+v, want string-form override Europe/Madrid", overrides["AAA"])
	}
	if overrides["BBB"].Timezone != "Asia/Tokyo" || overrides["BBB"].CountryCode != "JP" {
		t.Errorf("BBB = %+v, want object-form override", overrides["BBB"])
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	overrides, err := LoadOverrides(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing override file should not error, got: %v", err)
	}
	if overrides != nil {
		t.Errorf("overrides = %v, want nil", overrides)
	}
}

func TestLoadOverridesMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timezone_overrides.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadOverrides(path)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file %s", err, path)
	}
}

func TestLoadBulkMissingFile(t *testing.T) {
	entries, err := LoadBulk(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing bulk file should degrade to overrides-only, got: %v", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil", entries)
	}
}

func TestLoadMergesSources(t *testing.T) {
	dir := t.TempDir()
	bulkPath := filepath.Join(dir, "airport-timezones.json")
	overridesPath := filepath.Join(dir, "timezone_overrides.json")

	bulk := `[
		{"code": "CDG", "timezone": "Europe/Paris", "countryCode": "FR"},
		{"code": "MAD", "timezone": "Europe/London", "countryCode": "ES"}
	]`
	overrides := `{"MAD": "Europe/Madrid"}`

	if err := os.WriteFile(bulkPath, []byte(bulk), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(overridesPath, []byte(overrides), 0o644); err != nil {
		t.Fatal(err)
	}

	resolved, err := Load(bulkPath, overridesPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if resolved["CDG"].Timezone != "Europe/Paris" {
		t.Errorf("CDG = %+v, want bulk entry intact", resolved["CDG"])
	}
	if resolved["MAD"].Timezone != "Europe/Madrid" {
		t.Errorf("MAD timezone = %q, want override Europe/Madrid", resolved["MAD"].Timezone)
	}
	if resolved["MAD"].CountryCode != "ES" {
		t.Errorf("MAD country = %q, want bulk country ES retained", resolved["MAD"].CountryCode)
	}
}
