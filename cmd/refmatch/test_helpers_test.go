package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	manualDir  string
	catalogDir string
	outputDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		manualDir:  filepath.Join(base, "manual"),
		catalogDir: filepath.Join(base, "catalog"),
		outputDir:  filepath.Join(base, "output"),
	}

	content := fmt.Sprintf(`[paths]
manual_dir = %q
sections_dir = %q
catalog_dir = %q
output_dir = %q
log_dir = %q

[[chapters]]
code = "CIR"
name = "Circulatory System"
start_page = 1
end_page = 10
`,
		env.manualDir,
		filepath.Join(base, "sections"),
		env.catalogDir,
		env.outputDir,
		filepath.Join(base, "logs"),
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return env
}

func (e *cliTestEnv) writeChapterText(t *testing.T, code, text string) {
	t.Helper()
	if err := os.MkdirAll(e.manualDir, 0o755); err != nil {
		t.Fatalf("mkdir manual dir: %v", err)
	}
	path := filepath.Join(e.manualDir, code+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write chapter text: %v", err)
	}
}

func (e *cliTestEnv) writeRecord(t *testing.T, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(e.catalogDir, 0o755); err != nil {
		t.Fatalf("mkdir catalog dir: %v", err)
	}
	path := filepath.Join(e.catalogDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write record: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, needle string) {
	t.Helper()
	if !strings.Contains(output, needle) {
		t.Fatalf("output missing %q:\n%s", needle, output)
	}
}
