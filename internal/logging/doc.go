// Package logging constructs slog loggers with console and JSON handlers
// and standardized attribute keys for pipeline context (component, chapter,
// record, stage, run).
package logging
