package segment

import (
	"strings"
	"testing"
)

func TestAllCapsRule(t *testing.T) {
	rule := AllCapsRule{}
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"disease header", "HEARTWORM DISEASE", true},
		{"with digits", "CANINE PARVOVIRUS 2", true},
		{"too short", "LUNGS", false},
		{"too long", strings.Repeat("A", 80), false},
		{"length 79 passes", strings.Repeat("A", 79), true},
		{"mixed case", "Heartworm DISEASE", false},
		{"page delimiter", "--- PAGE 41 ---", false},
		{"leading page number", "412 TOXICOLOGY", false},
		{"no long upper run", "A. B. C. D.", false},
		{"no letters", "100 200 300", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Matches(tt.line); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestTitleCaseRule(t *testing.T) {
	rule := TitleCaseRule{}
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"parenthetical synonym", "Dilated Cardiomyopathy (DCM)", true},
		{"two words", "Feline Panleukopenia", true},
		{"sentence with proper noun", "Caused by Dirofilaria immitis.", false},
		{"plain sentence", "Cough and exercise intolerance.", false},
		{"too short", "Skin Wound", false},
		{"single word", "Cardiomyopathy", false},
		{"all caps not title case", "HEARTWORM DISEASE TREATMENT", false},
		{"page delimiter", "--- Page Marker Line ---", false},
		{"too many words", "One Two Three Four Five Six Seven Eight Nine Ten Eleven", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.Matches(tt.line); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestDefaultRuleOrder(t *testing.T) {
	rules := DefaultRules()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}
	if rules[0].Name() != "all-caps" || rules[1].Name() != "title-case" {
		t.Errorf("unexpected rule order: %s, %s", rules[0].Name(), rules[1].Name())
	}
}
