package enrich

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"refmatch/internal/catalog"
	"refmatch/internal/match"
	"refmatch/internal/textutil"
)

// Keyword groups that flag clinically important content in manual text.
var (
	prognosisKeywords = []string{
		"prognosis", "mortality", "survival", "fatal", "guarded", "poor prognosis",
		"good prognosis", "favorable", "unfavorable", "death rate", "cure rate",
	}
	diffDxKeywords = []string{
		"differential", "differentiate", "distinguish", "rule out", "must be differentiated",
		"should be considered", "confused with",
	}
	epidemiologyKeywords = []string{
		"prevalence", "incidence", "worldwide", "endemic", "sporadic", "outbreak",
		"zoonotic", "reportable", "notifiable", "seasonal",
	}
)

var drugDosePattern = regexp.MustCompile(`(?i)(\w+(?:\s+\w+)?)\s*\(\s*(\d+[\.\d]*)\s*(?:mg|mcg|IU)/kg`)

// Gap item identifiers carried in gap reports.
const (
	GapPrognosis     = "prognosis"
	GapDiffDx        = "differentialDiagnoses"
	GapTreatment     = "treatment_doses"
	GapEpidemiology  = "epidemiology"
	maxReportedDoses = 5
)

// TextProfile summarizes what clinical content a span of manual text carries.
type TextProfile struct {
	HasPrognosis    bool
	HasDiffDx       bool
	HasEpidemiology bool
	DrugDoses       []string
	TextLength      int
}

// ProfileText scans manual text for the keyword groups and dose mentions.
func ProfileText(text string) TextProfile {
	lower := strings.ToLower(text)
	profile := TextProfile{
		HasPrognosis:    containsAny(lower, prognosisKeywords),
		HasDiffDx:       containsAny(lower, diffDxKeywords),
		HasEpidemiology: containsAny(lower, epidemiologyKeywords),
		TextLength:      len(text),
	}
	for _, m := range drugDosePattern.FindAllStringSubmatch(text, -1) {
		profile.DrugDoses = append(profile.DrugDoses, fmt.Sprintf("%s (%s mg/kg)", m[1], m[2]))
	}
	return profile
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

type recordStatus struct {
	hasPrognosis      bool
	hasDiffDx         bool
	hasTreatment      bool
	hasEpidemiology   bool
	descriptionLength int
}

func statusOf(record catalog.Record) recordStatus {
	status := recordStatus{
		hasPrognosis:      strings.TrimSpace(record.Prognosis) != "",
		hasDiffDx:         len(record.DifferentialDiagnoses) > 0,
		hasTreatment:      strings.TrimSpace(record.Treatment) != "",
		descriptionLength: len(record.Description),
	}
	for _, species := range record.Species {
		if strings.TrimSpace(species.Prevalence) != "" {
			status.hasEpidemiology = true
			break
		}
	}
	return status
}

// Gap describes manual content a record lacks.
type Gap struct {
	Name                string   `json:"name"`
	Gaps                []string `json:"gaps"`
	TextLength          int      `json:"textLength"`
	DrugDoses           []string `json:"drugDosesFound,omitempty"`
	DescriptionLength   int      `json:"descriptionLength"`
	DescriptionCoverage float64  `json:"descriptionCoverage"`
	BestScore           float64  `json:"bestScore"`
}

// GapReport is the full gap analysis outcome. Candidates lists records
// whose best match cleared the high-score bar with at least two gaps;
// those are worth manual enrichment first.
type GapReport struct {
	Gaps       map[string]Gap `json:"gaps"`
	Candidates []string       `json:"candidates"`
}

// Analyzer compares matched manual text against catalog completeness.
type Analyzer struct {
	// HighScore is the best-score bar for enrichment candidates.
	HighScore float64
	// MinGaps is how many gaps a candidate needs. Zero means two.
	MinGaps int
}

// Analyze walks records in input order and reports, per record with
// matches, which topics the manual covers that the record does not.
func (a Analyzer) Analyze(records []catalog.Record, report match.Report) GapReport {
	minGaps := a.MinGaps
	if minGaps <= 0 {
		minGaps = 2
	}

	result := GapReport{Gaps: make(map[string]Gap)}
	for _, record := range records {
		set, ok := report[record.ID()]
		if !ok {
			continue
		}

		texts := make([]string, 0, len(set.Matches))
		for _, m := range set.Matches {
			texts = append(texts, m.Text)
		}
		combined := strings.Join(texts, "\n")

		profile := ProfileText(combined)
		status := statusOf(record)

		var items []string
		if profile.HasPrognosis && !status.hasPrognosis {
			items = append(items, GapPrognosis)
		}
		if profile.HasDiffDx && !status.hasDiffDx {
			items = append(items, GapDiffDx)
		}
		if len(profile.DrugDoses) > 0 && !status.hasTreatment {
			items = append(items, GapTreatment)
		}
		if profile.HasEpidemiology && !status.hasEpidemiology {
			items = append(items, GapEpidemiology)
		}
		if len(items) == 0 {
			continue
		}

		doses := profile.DrugDoses
		if len(doses) > maxReportedDoses {
			doses = doses[:maxReportedDoses]
		}

		result.Gaps[record.ID()] = Gap{
			Name:                set.Name,
			Gaps:                items,
			TextLength:          profile.TextLength,
			DrugDoses:           doses,
			DescriptionLength:   status.descriptionLength,
			DescriptionCoverage: descriptionCoverage(record.Description, combined),
			BestScore:           set.BestScore,
		}
		if set.BestScore >= a.HighScore && len(items) >= minGaps {
			result.Candidates = append(result.Candidates, record.ID())
		}
	}
	return result
}

// descriptionCoverage estimates how much of the matched manual text the
// record's own description already reflects.
func descriptionCoverage(description, manualText string) float64 {
	if strings.TrimSpace(description) == "" || strings.TrimSpace(manualText) == "" {
		return 0
	}
	return textutil.CosineSimilarity(
		textutil.NewFingerprint(description),
		textutil.NewFingerprint(manualText),
	)
}

// GapCounts tallies how many records carry each gap type.
func (r GapReport) GapCounts() map[string]int {
	counts := make(map[string]int)
	for _, gap := range r.Gaps {
		for _, item := range gap.Gaps {
			counts[item]++
		}
	}
	return counts
}

// WriteFile serializes the gap report as indented JSON.
func (r GapReport) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal gap report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write gap report: %w", err)
	}
	return nil
}
