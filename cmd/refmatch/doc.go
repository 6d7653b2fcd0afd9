// Package main hosts the refmatch CLI entrypoint and command graph.
//
// The Cobra-based command tree drives manual text segmentation, catalog
// matching, gap analysis, and catalog enrichment. It centralizes
// configuration resolution and structured logging setup so subcommands
// can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the
// internal packages first, then surface it through dedicated commands
// or flags here.
package main
