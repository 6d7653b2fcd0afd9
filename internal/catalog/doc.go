// Package catalog loads target disease records from a directory of YAML
// files and derives the normalized search terms used to match each record
// against extracted manual sections.
package catalog
