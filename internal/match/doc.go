// Package match scores catalog records against the extracted section pool
// with a tiered similarity heuristic, then ranks and bounds each record's
// candidate matches. The tier order is a precision/recall trade-off: exact
// and containment title matches are trusted fully, fuzzy title similarity
// is down-weighted, and body containment is the weakest signal.
//
// Cost is O(records x sections x terms). At the catalog and manual sizes
// this tool targets that is the dominant but acceptable cost; records are
// matched in parallel against the shared immutable pool.
package match
