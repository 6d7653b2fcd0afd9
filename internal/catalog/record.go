package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Alias is an alternate record name, optionally tagged with a language.
// Catalog files carry aliases both as plain strings and as
// {language, alias} mappings; both forms decode into this type.
type Alias struct {
	Language string `yaml:"language"`
	Alias    string `yaml:"alias"`
}

// UnmarshalYAML accepts either a scalar alias or a tagged mapping.
func (a *Alias) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		a.Language = ""
		a.Alias = value.Value
		return nil
	}
	type plain Alias
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("decode alias: %w", err)
	}
	*a = Alias(p)
	return nil
}

// SpeciesEntry describes one affected species, optionally with prevalence
// notes used by the gap analysis.
type SpeciesEntry struct {
	Name       string `yaml:"name"`
	Prevalence string `yaml:"prevalence"`
}

// ManualRef points a record at its supporting manual section.
type ManualRef struct {
	Edition      int    `yaml:"edition"`
	Chapter      string `yaml:"chapter"`
	SectionTitle string `yaml:"sectionTitle"`
	Page         int    `yaml:"page"`
}

// Record is a target catalog entry. It is read-only to the matching core;
// the enrichment steps mutate the backing file, not this struct.
type Record struct {
	Slug                  string         `yaml:"slug"`
	Name                  string         `yaml:"name"`
	Category              string         `yaml:"category"`
	Aliases               []Alias        `yaml:"aliases"`
	Description           string         `yaml:"description"`
	Prognosis             string         `yaml:"prognosis"`
	DifferentialDiagnoses []string       `yaml:"differentialDiagnoses"`
	Treatment             string         `yaml:"treatment"`
	Species               []SpeciesEntry `yaml:"species"`
	ManualRef             *ManualRef     `yaml:"manualRef"`

	// Path is the backing file, set by the loader.
	Path string `yaml:"-"`
}

// ID returns the record's stable identifier.
func (r Record) ID() string {
	return strings.TrimSpace(r.Slug)
}
