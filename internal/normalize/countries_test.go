package normalize

import (
	"testing"

	"github.com/NourAshoush/GlobeLogAssets/internal/dataset"
)

func TestCleanCountryName(t *testing.T) {
	opts := DefaultCountryOptions()

	tests := []struct {
		name    string
		code    string
		rawName string
		want    string
	}{
		{
			name:    "plain name unchanged",
			code:    "DE",
			rawName: "Germany",
			want:    "Germany",
		},
		{
			name:    "parenthetical suffix stripped",
			code:    "FR",
			rawName: "France (Metropolitan)",
			want:    "France",
		},
		{
			name:    "multiple parentheticals stripped",
			code:    "KR",
			rawName: "Korea (South) Republic (of)",
			want:    "Korea Republic",
		},
		{
			name:    "whitespace runs collapsed",
			code:    "GB",
			rawName: "United   Kingdom",
			want:    "United Kingdom",
		},
		{
			name:    "override wins over cleanup",
			code:    "SH",
			rawName: "Saint Helena, Ascension, and Tristan da Cunha",
			want:    "Saint Helena & Tristan da Cunha",
		},
		{
			name:    "override ignores raw name entirely",
			code:    "PS",
			rawName: "Palestinian Territory (Occupied)",
			want:    "Palestine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanCountryName(tt.code, tt.rawName, opts)
			if got != tt.want {
				t.Errorf("CleanCountryName(%q, %q) = %q, want %q", tt.code, tt.rawName, got, tt.want)
			}
		})
	}
}

func TestCurateCountries(t *testing.T) {
	opts := DefaultCountryOptions()

	rows := []dataset.Country{
		{Code: "FR", Name: "France (Metropolitan)", Continent: "EU"},
		{Code: "", Name: "Nowhere", Continent: "EU"},
		{Code: "XP", Name: "Non-standard", Continent: "AS"},
		{Code: "ZZ", Name: "Unknownia", Continent: "XX"},
	}

	got := CurateCountries(rows, opts)

	if len(got) != 2 {
		t.Fatalf("CurateCountries() kept %d rows, want 2", len(got))
	}
	if got[0].Name != "France" {
		t.Errorf("France name = %q, want %q", got[0].Name, "France")
	}
	if got[1].Continent != "XX" {
		t.Errorf("continent code = %q, want raw %q preserved", got[1].Continent, "XX")
	}
}

func TestDeriveContinents(t *testing.T) {
	opts := DefaultCountryOptions()

	countries := []dataset.Country{
		{Code: "FR", Continent: "EU"},
		{Code: "DE", Continent: "EU"},
		{Code: "US", Continent: "NA"},
		{Code: "ZA", Continent: "AF"},
		{Code: "ZZ", Continent: "XX"},
		{Code: "YY", Continent: ""},
	}

	got := DeriveContinents(countries, opts)

	// Sorted by (name, code): Africa, Europe, North America, XX.
	want := []dataset.Continent{
		{Code: "AF", Name: "Africa"},
		{Code: "EU", Name: "Europe"},
		{Code: "NA", Name: "North America"},
		{Code: "XX", Name: "XX"},
	}

	if len(got) != len(want) {
		t.Fatalf("DeriveContinents() returned %d continents, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("continent[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDeriveContinentsExactlyReferenced(t *testing.T) {
	opts := DefaultCountryOptions()

	countries := []dataset.Country{{Code: "FR", Continent: "EU"}}
	got := DeriveContinents(countries, opts)

	if len(got) != 1 || got[0].Code != "EU" {
		t.Fatalf("DeriveContinents() = %+v, want exactly the referenced continent EU", got)
	}
}
