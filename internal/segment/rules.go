package segment

import (
	"strings"
	"unicode"
)

// Rule decides whether a trimmed, non-empty line is a section header.
// Rules are evaluated in a fixed order and the first match wins.
type Rule interface {
	Name() string
	Matches(line string) bool
}

// DefaultRules returns the header rules in evaluation order: the all-caps
// chapter-level rule first, then the title-case subsection rule.
func DefaultRules() []Rule {
	return []Rule{AllCapsRule{}, TitleCaseRule{}}
}

// AllCapsRule matches chapter-level headers such as "HEARTWORM DISEASE":
// lines of 6-79 characters that are entirely upper-case, do not start with
// a page-delimiter marker or a leading number, and contain a run of at
// least three consecutive upper-case letters.
type AllCapsRule struct{}

func (AllCapsRule) Name() string { return "all-caps" }

func (AllCapsRule) Matches(line string) bool {
	if len(line) <= 5 || len(line) >= 80 {
		return false
	}
	if strings.HasPrefix(line, "---") {
		return false
	}
	if startsWithPageNumber(line) {
		return false
	}
	if !isUpper(line) {
		return false
	}
	return upperRun(line) >= 3
}

// TitleCaseRule matches subsection headers such as "Dilated Cardiomyopathy
// (DCM)": lines of 11-99 characters starting with an upper-case letter
// followed by a lower-case letter, with 2-10 words of which more than half
// are capitalized. The strict majority keeps sentences that merely open
// with a proper noun ("Caused by Dirofilaria immitis.") in the body.
type TitleCaseRule struct{}

func (TitleCaseRule) Name() string { return "title-case" }

func (TitleCaseRule) Matches(line string) bool {
	if len(line) <= 10 || len(line) >= 100 {
		return false
	}
	if strings.HasPrefix(line, "---") {
		return false
	}
	runes := []rune(line)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) || !unicode.IsLower(runes[1]) {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 10 {
		return false
	}
	capped := 0
	for _, w := range words {
		if first := []rune(w)[0]; unicode.IsUpper(first) {
			capped++
		}
	}
	return capped*2 > len(words)
}

// isUpper reports whether all cased characters are upper-case and at least
// one cased character is present.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// upperRun returns the length of the longest run of consecutive upper-case
// letters.
func upperRun(s string) int {
	longest, run := 0, 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// startsWithPageNumber reports whether the line begins with digits followed
// by whitespace, the residue of printed page numbers.
func startsWithPageNumber(s string) bool {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i > 0 && i < len(s) && (s[i] == ' ' || s[i] == '\t')
}
