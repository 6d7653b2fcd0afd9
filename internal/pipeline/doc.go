// Package pipeline orchestrates the extraction and matching stages.
//
// Extraction segments every configured chapter into titled sections and
// writes per-chapter artifacts plus an index. Matching loads those
// artifacts with the catalog and produces the record-to-section report.
// Chapters and records fan out across a bounded worker group; a file
// lock on the output directory keeps concurrent runs from interleaving
// artifacts.
package pipeline
