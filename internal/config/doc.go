// Package config loads, normalizes, and validates refmatch configuration
// from TOML. Defaults cover every field, so a missing config file yields a
// usable configuration; paths are tilde-expanded and made absolute during
// normalization.
package config
