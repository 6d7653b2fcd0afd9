package match

import (
	"strings"

	"refmatch/internal/textutil"
)

// Scorer computes the tiered similarity score for one term against one
// section. All thresholds come from configuration.
type Scorer struct {
	// FuzzyThreshold is the minimum similarity ratio for the fuzzy tier.
	FuzzyThreshold float64
	// FuzzyWeight down-weights fuzzy title matches.
	FuzzyWeight float64
	// BodyScore is the score assigned to body-containment matches. It
	// equals the retention threshold, so body hits qualify exactly.
	BodyScore float64
}

// Score evaluates the tiers in order against a section's normalized title
// and the lowered leading window of its body:
//
//	exact title match          -> 1.0
//	title containment          -> 0.9
//	fuzzy ratio r > threshold  -> r * weight
//	term within body window    -> BodyScore
//	otherwise                  -> 0
func (s Scorer) Score(term, normTitle, bodyWindow string) float64 {
	if term == "" {
		return 0
	}
	if normTitle != "" {
		if term == normTitle {
			return 1.0
		}
		if strings.Contains(normTitle, term) || strings.Contains(term, normTitle) {
			return 0.9
		}
		if ratio := textutil.Ratio(term, normTitle); ratio > s.FuzzyThreshold {
			return ratio * s.FuzzyWeight
		}
	}
	if strings.Contains(bodyWindow, term) {
		return s.BodyScore
	}
	return 0
}
