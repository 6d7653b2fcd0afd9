package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testChapterText = `--- PAGE 1 ---
HEARTWORM DISEASE
caused by dirofilaria immitis, a filarial nematode of dogs.
adult worms live in the pulmonary arteries and right heart.
the infection must be differentiated from lungworm infection, angiostrongylosis, and pulmonary hypertension.
the prognosis is guarded in dogs with advanced disease.
--- PAGE 2 ---
ATRIAL FIBRILLATION
an irregular supraventricular rhythm seen mostly in large breeds.
affected dogs may show exercise intolerance and weakness on exam.
auscultation reveals a chaotic rhythm with pulse deficits present.
electrocardiography confirms absent p waves and irregular intervals.
underlying structural heart disease is common in affected animals.
rate control remains the mainstay of therapy in most patients seen.
serial monitoring guides dose adjustment over the following weeks.
owners should watch for weakness, collapse, or reduced appetite.
chronic cases may progress despite therapy, with digoxin toxicity a risk.
`

const testRecordYAML = `slug: heartworm-disease
name: Heartworm Disease
category: circulatory
description: Parasitic infection of the pulmonary arteries.
`

func TestExtractMatchReportFlow(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeChapterText(t, "CIR", testChapterText)
	recordPath := env.writeRecord(t, "heartworm-disease.yaml", testRecordYAML)

	out, err := runCLI(t, []string{"extract"}, env.configPath)
	if err != nil {
		t.Fatalf("extract: %v\n%s", err, out)
	}
	requireContains(t, out, "Chapters processed: 1")
	requireContains(t, out, "Sections found: 2")

	out, err = runCLI(t, []string{"match"}, env.configPath)
	if err != nil {
		t.Fatalf("match: %v\n%s", err, out)
	}
	requireContains(t, out, "Total matched: 1/1")
	requireContains(t, out, "High-quality matches: 1")
	requireContains(t, out, "Score distribution:")
	requireContains(t, out, "heartworm-disease")

	out, err = runCLI(t, []string{"report"}, env.configPath)
	if err != nil {
		t.Fatalf("report: %v\n%s", err, out)
	}
	requireContains(t, out, "Total matched: 1")
	requireContains(t, out, "1.000")

	out, err = runCLI(t, []string{"gaps"}, env.configPath)
	if err != nil {
		t.Fatalf("gaps: %v\n%s", err, out)
	}
	requireContains(t, out, "Total gaps found: 1")
	requireContains(t, out, "prognosis")

	out, err = runCLI(t, []string{"refs"}, env.configPath)
	if err != nil {
		t.Fatalf("refs: %v\n%s", err, out)
	}
	requireContains(t, out, "Updated: 1")

	stamped, err := os.ReadFile(recordPath)
	if err != nil {
		t.Fatalf("read stamped record: %v", err)
	}
	requireContains(t, string(stamped), "manualRef:")
	requireContains(t, string(stamped), `chapter: "CIR"`)

	out, err = runCLI(t, []string{"enrich"}, env.configPath)
	if err != nil {
		t.Fatalf("enrich: %v\n%s", err, out)
	}
	requireContains(t, out, "Enriched: 1 files")

	enriched, err := os.ReadFile(recordPath)
	if err != nil {
		t.Fatalf("read enriched record: %v", err)
	}
	requireContains(t, string(enriched), "differentialDiagnoses:")
	requireContains(t, string(enriched), "- Lungworm Infection")

	out, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v\n%s", err, out)
	}
	if !strings.Contains(out, "completed") {
		t.Errorf("runs output missing completed runs:\n%s", out)
	}

	out, err = runCLI(t, []string{"sections", "--chapter", "cir"}, env.configPath)
	if err != nil {
		t.Fatalf("sections: %v\n%s", err, out)
	}
	requireContains(t, out, "HEARTWORM DISEASE")
}

func TestRunCommandEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeChapterText(t, "CIR", testChapterText)
	env.writeRecord(t, "heartworm-disease.yaml", testRecordYAML)

	out, err := runCLI(t, []string{"run"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	requireContains(t, out, "Chapters processed: 1")
	requireContains(t, out, "Total matched: 1/1")

	if _, err := os.Stat(filepath.Join(env.outputDir, "matches.json")); err != nil {
		t.Errorf("match report not written: %v", err)
	}
}

func TestSearchFindsUnmatchedRecords(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeChapterText(t, "CIR", testChapterText)
	env.writeRecord(t, "heartworm-disease.yaml", testRecordYAML)
	// Mentioned only deep in the chapter body, past the matcher's window.
	env.writeRecord(t, "digoxin-toxicity.yaml",
		"slug: digoxin-toxicity\nname: Digoxin Toxicity\n")

	if out, err := runCLI(t, []string{"run"}, env.configPath); err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}

	out, err := runCLI(t, []string{"search"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v\n%s", err, out)
	}
	requireContains(t, out, "Records with raw-text hits: 1")

	data, err := os.ReadFile(filepath.Join(env.outputDir, "context-hits.json"))
	if err != nil {
		t.Fatalf("read context hits: %v", err)
	}
	requireContains(t, string(data), "digoxin-toxicity")
}

func TestMatchWithoutExtractFails(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeRecord(t, "heartworm-disease.yaml", testRecordYAML)

	if out, err := runCLI(t, []string{"match"}, env.configPath); err == nil {
		t.Fatalf("expected match to fail without artifacts:\n%s", out)
	}
}
