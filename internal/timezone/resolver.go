// Package timezone resolves per-airport timezones by layering a
// hand-maintained override file on top of the bulk timezone feed.
package timezone

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// BulkEntry is one element of the bulk airport-timezones JSON array.
type BulkEntry struct {
	Code        string `json:"code"`
	Timezone    string `json:"timezone"`
	CountryCode string `json:"countryCode"`
}

// Entry is the resolved timezone for an airport code.
type Entry struct {
	Timezone    string
	CountryCode string
}

// Map is the fully resolved code->timezone mapping. A code appears at most
// once: duplicates in the bulk feed are dropped first-wins, then overrides
// replace whatever the bulk feed said.
type Map map[string]Entry

// LoadBulk reads the bulk timezone feed. A missing file is not an error:
// the resolver degrades to overrides-only.
func LoadBulk(path string) ([]BulkEntry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []BulkEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return entries, nil
}

// LoadOverrides reads the manual correction file. Values may be either a
// bare timezone string or an object with timezone and countryCode fields.
// A missing file means no overrides; malformed JSON is a configuration
// error naming the file.
func LoadOverrides(path string) (map[string]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	overrides := make(map[string]Entry, len(raw))
	for code, value := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}

		var entry Entry
		var tz string
		if err := json.Unmarshal(value, &tz); err == nil {
			entry.Timezone = strings.TrimSpace(tz)
		} else {
			var obj struct {
				Timezone    string `json:"timezone"`
				CountryCode string `json:"countryCode"`
			}
			if err := json.Unmarshal(value, &obj); err != nil {
				return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
			}
			entry.Timezone = strings.TrimSpace(obj.Timezone)
			entry.CountryCode = strings.TrimSpace(obj.CountryCode)
		}

		if entry.Timezone != "" {
			overrides[code] = entry
		}
	}
	return overrides, nil
}

// Build merges the bulk feed with the override layer. Bulk entries are kept
// first-wins per code and entries with empty timezones are skipped. An
// override always replaces the bulk entry; if it carries no country code,
// the bulk entry's country code (if any) is retained.
func Build(bulk []BulkEntry, overrides map[string]Entry) Map {
	resolved := make(Map, len(bulk))
	for _, entry := range bulk {
		code := strings.TrimSpace(entry.Code)
		if code == "" {
			continue
		}
		if _, seen := resolved[code]; seen {
			continue
		}
		tz := strings.TrimSpace(entry.Timezone)
		if tz == "" {
			continue
		}
		resolved[code] = Entry{
			Timezone:    tz,
			CountryCode: strings.TrimSpace(entry.CountryCode),
		}
	}

	for code, override := range overrides {
		if override.CountryCode == "" {
			override.CountryCode = resolved[code].CountryCode
		}
		resolved[code] = override
	}
	return resolved
}

// Load reads both sources and returns the merged map.
func Load(bulkPath, overridesPath string) (Map, error) {
	bulk, err := LoadBulk(bulkPath)
	if err != nil {
		return nil, err
	}
	overrides, err := LoadOverrides(overridesPath)
	if err != nil {
		return nil, err
	}
	return Build(bulk, overrides), nil
}
