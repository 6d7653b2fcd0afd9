// Package textutil provides the text canonicalization and similarity
// primitives shared by section segmentation and record matching.
//
// The primary use cases are:
//   - Normalizing titles and search terms into a comparable form
//   - Computing a character-level similarity ratio between two strings
//   - Creating token-based fingerprints from text for coverage comparison
//
// Normalization is idempotent: applying it twice yields the same string.
package textutil
