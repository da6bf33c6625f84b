package verify

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FlagsConfig configures the flag-asset check.
type FlagsConfig struct {
	Logger *slog.Logger

	// Dir is the directory holding per-country flag files named
	// <ISO_CODE>.<ext>.
	Dir string

	// Extensions is the allowed set of file extensions (lower case, with
	// leading dot). Defaults to pdf/svg/png when empty.
	Extensions map[string]bool
}

func defaultFlagExtensions() map[string]bool {
	return map[string]bool{".pdf": true, ".svg": true, ".png": true}
}

// Flags checks that every curated country code has exactly one flag asset.
// Files whose stem matches a code case-insensitively are renamed in place
// to the canonical uppercase code; duplicates and missing assets fail the
// check. Running twice on a normalized directory performs zero renames.
func Flags(cfg FlagsConfig, countryCodes []string) (*Report, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Dir == "" {
		return nil, errors.New("flags directory is required")
	}
	if cfg.Extensions == nil {
		cfg.Extensions = defaultFlagExtensions()
	}

	if _, err := os.Stat(cfg.Dir); err != nil {
		return nil, fmt.Errorf("missing flags directory %s: %w", cfg.Dir, err)
	}

	index, duplicates, err := indexFlagFiles(cfg.Dir, cfg.Extensions)
	if err != nil {
		return nil, err
	}

	codes := make(map[string]bool, len(countryCodes))
	for _, code := range countryCodes {
		if code != "" {
			codes[code] = true
		}
	}

	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	report := &Report{}
	renamed := 0
	var missing, failed []string

	for _, code := range sorted {
		path, ok := index[code]
		if !ok {
			missing = append(missing, code)
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if stem == code {
			continue
		}
		if err := renameWithCase(path, code); err != nil {
			cfg.Logger.Debug("flag rename failed", "code", code, "error", err)
			failed = append(failed, code)
			continue
		}
		renamed++
		index[code] = filepath.Join(cfg.Dir, code+strings.ToLower(filepath.Ext(path)))
	}

	report.Infof("Validated %d curated countries against flag assets.", len(codes))
	if renamed > 0 {
		report.Infof("Renamed %d flag files to uppercase ISO codes.", renamed)
	} else {
		report.Infof("All matching flag files already used uppercase ISO codes.")
	}

	if len(missing) > 0 {
		report.Failf("Missing %d flags:", len(missing))
		for _, code := range missing {
			report.Itemf("%s", code)
		}
	}
	if len(failed) > 0 {
		report.Failf("Failed to normalize filenames for codes: %s", strings.Join(failed, ", "))
	}
	if len(duplicates) > 0 {
		report.Failf("Duplicate flag files detected:")
		dupCodes := make([]string, 0, len(duplicates))
		for code := range duplicates {
			dupCodes = append(dupCodes, code)
		}
		sort.Strings(dupCodes)
		for _, code := range dupCodes {
			report.Itemf("%s: %s", code, strings.Join(duplicates[code], ", "))
		}
	}

	var extra []string
	for code := range index {
		if !codes[code] {
			extra = append(extra, code)
		}
	}
	sort.Strings(extra)
	if len(extra) > 0 {
		report.Infof("Flags without matching country codes: %s", strings.Join(extra, ", "))
	}

	if report.OK() {
		report.Infof("Every curated country has a flag asset in the flags directory.")
	}
	return report, nil
}

// indexFlagFiles maps uppercase file stems to paths. The first file seen
// for a code wins; any further files for the same code are duplicates.
func indexFlagFiles(dir string, extensions map[string]bool) (map[string]string, map[string][]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read flags directory: %w", err)
	}

	index := make(map[string]string)
	duplicates := make(map[string][]string)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !extensions[ext] {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		key := strings.ToUpper(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		if existing, ok := index[key]; ok {
			if len(duplicates[key]) == 0 {
				duplicates[key] = append(duplicates[key], existing)
			}
			duplicates[key] = append(duplicates[key], path)
			continue
		}
		index[key] = path
	}
	return index, duplicates, nil
}

// renameWithCase renames a flag file to the canonical uppercase code. A
// direct rename can be rejected on case-insensitive filesystems when source
// and target differ only by case, so the fallback goes through a temporary
// name. Either the rename fully succeeds or the original file survives.
func renameWithCase(path, code string) error {
	dir := filepath.Dir(path)
	ext := strings.ToLower(filepath.Ext(path))
	target := filepath.Join(dir, code+ext)

	if filepath.Base(path) == filepath.Base(target) {
		return nil
	}

	if err := os.Rename(path, target); err == nil {
		return nil
	}

	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate temporary name: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	temp := filepath.Join(dir, stem+"_"+hex.EncodeToString(nonce)+ext)

	if err := os.Rename(path, temp); err != nil {
		return fmt.Errorf("failed to rename %s via temporary name: %w", path, err)
	}
	if err := os.Rename(temp, target); err != nil {
		// Put the original name back so the asset is never lost.
		if restoreErr := os.Rename(temp, path); restoreErr != nil {
			return fmt.Errorf("failed to rename %s (asset left at %s): %w", path, temp, err)
		}
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return nil
}
