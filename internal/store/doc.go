// Package store persists pipeline runs in SQLite.
//
// Every run records the chapters it segmented, the section index it
// produced, and a per-record summary of the matching stage. The JSON
// artifacts on disk remain the canonical output; the database exists so
// past runs can be listed and compared without re-reading artifacts.
package store
