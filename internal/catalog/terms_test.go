package catalog

import (
	"reflect"
	"testing"
)

func TestDeriveTermsOrderAndDedup(t *testing.T) {
	record := Record{
		Slug: "heartworm-disease",
		Name: "Heartworm Disease",
		Aliases: []Alias{
			{Alias: "Dirofilariasis"},
			{Alias: "Heartworm Disease"}, // duplicate of the name once normalized
		},
	}

	got := DeriveTerms(record, "en", 4)
	want := []string{"heartworm disease", "dirofilariasis"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveTerms = %v, want %v", got, want)
	}
}

func TestDeriveTermsSlugPhrase(t *testing.T) {
	record := Record{Slug: "feline-lower-urinary-tract-disease"}
	got := DeriveTerms(record, "en", 4)
	want := []string{"feline lower urinary tract disease"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveTerms = %v, want %v", got, want)
	}
}

func TestDeriveTermsLanguageFilter(t *testing.T) {
	record := Record{
		Slug: "pyometra",
		Name: "Pyometra",
		Aliases: []Alias{
			{Alias: "Uterine Infection", Language: "en"},
			{Alias: "Gebaermutterentzuendung", Language: "de"},
			{Alias: "Pus Womb"},
		},
	}

	got := DeriveTerms(record, "en", 4)
	want := []string{"pyometra", "uterine infection", "pus womb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveTerms = %v, want %v", got, want)
	}
}

func TestDeriveTermsFiltersShortTerms(t *testing.T) {
	record := Record{
		Slug: "fip",
		Name: "FIP",
		Aliases: []Alias{
			{Alias: "Feline Infectious Peritonitis"},
		},
	}

	got := DeriveTerms(record, "en", 4)
	want := []string{"feline infectious peritonitis"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveTerms = %v, want %v", got, want)
	}
}

func TestDeriveTermsNoUsableTerms(t *testing.T) {
	record := Record{Slug: "ab", Name: "A-B"}
	if got := DeriveTerms(record, "en", 4); len(got) != 0 {
		t.Errorf("expected empty term set, got %v", got)
	}
}
