package catalog

import (
	"strings"

	"refmatch/internal/textutil"
)

// DeriveTerms builds the record's normalized search terms: the primary
// name, the slug with separators replaced by spaces, and aliases tagged
// with the target language (untagged aliases are assumed usable). Terms
// shorter than minLength normalized characters are dropped to avoid
// spurious matches. Order is derivation order with duplicates removed, so
// "first term wins" tie-breaks are deterministic.
func DeriveTerms(record Record, language string, minLength int) []string {
	candidates := make([]string, 0, 2+len(record.Aliases))
	candidates = append(candidates, record.Name)
	candidates = append(candidates, strings.NewReplacer("-", " ", "_", " ").Replace(record.ID()))
	for _, alias := range record.Aliases {
		if alias.Language != "" && !strings.EqualFold(alias.Language, language) {
			continue
		}
		candidates = append(candidates, alias.Alias)
	}

	seen := make(map[string]struct{}, len(candidates))
	terms := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		term := textutil.Normalize(candidate)
		if len(term) < minLength {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}
