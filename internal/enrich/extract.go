package enrich

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxDifferentials bounds how many extracted differentials a record gets.
const MaxDifferentials = 8

const maxPrognosisSentences = 3

// The sentence shapes the manual uses when listing differentials.
var differentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`differentiat\w+ from (.+?)(?:\.|$)`),
	regexp.MustCompile(`differential diagnos\w+ (?:include|are|is)\s+(.+?)(?:\.|$)`),
	regexp.MustCompile(`should be (?:considered|ruled out)[:\s]+(.+?)(?:\.|$)`),
}

var clinicalFeaturePattern = regexp.MustCompile(`clinical (?:signs?|features?|findings?) (?:include|are|may include)\s+(.+?)(?:\.|$)`)

var listSplitter = regexp.MustCompile(`,\s*(?:and\s+)?|;\s*`)

var prognosisSentencePattern = regexp.MustCompile(`[^.]*(?:prognosis|mortality|survival|fatal)[^.]*\.`)

// Differentials extracts differential diagnosis names mentioned in
// manual text. The record's own name is excluded. Results come back
// lowercase and sorted.
func Differentials(text, selfName string) []string {
	lower := strings.ToLower(text)
	self := strings.ToLower(strings.TrimSpace(selfName))

	seen := make(map[string]struct{})
	for _, pattern := range differentialPatterns {
		for _, m := range pattern.FindAllStringSubmatch(lower, -1) {
			for _, item := range splitListItems(m[1]) {
				if self != "" && strings.Contains(item, self) {
					continue
				}
				seen[item] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// ClinicalFeatures extracts clinical sign phrases listed in manual text.
func ClinicalFeatures(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	for _, m := range clinicalFeaturePattern.FindAllStringSubmatch(lower, -1) {
		for _, item := range splitListItems(m[1]) {
			seen[item] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// PrognosisSentences returns up to three sentences of prognosis
// language found in manual text, lowercased.
func PrognosisSentences(text string) []string {
	var sentences []string
	for _, m := range prognosisSentencePattern.FindAllString(strings.ToLower(text), -1) {
		sentence := strings.TrimSpace(m)
		if len(sentence) > 10 && len(sentence) < 200 {
			sentences = append(sentences, sentence)
			if len(sentences) == maxPrognosisSentences {
				break
			}
		}
	}
	return sentences
}

// TitleDifferentials renders extracted differentials for catalog files,
// title-cased in the given language and capped at MaxDifferentials.
func TitleDifferentials(diffs []string, languageTag string) []string {
	if len(diffs) > MaxDifferentials {
		diffs = diffs[:MaxDifferentials]
	}
	tag, err := language.Parse(languageTag)
	if err != nil {
		tag = language.English
	}
	caser := cases.Title(tag)

	titled := make([]string, len(diffs))
	for i, diff := range diffs {
		titled[i] = caser.String(diff)
	}
	return titled
}

func splitListItems(list string) []string {
	var items []string
	for _, item := range listSplitter.Split(list, -1) {
		item = strings.TrimSpace(item)
		if len(item) > 3 && len(item) < 60 {
			items = append(items, item)
		}
	}
	return items
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
