package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refmatch/internal/config"
)

// WriteChapterText writes a chapter text file under the config's manual
// directory. Page bodies are joined with the page markers the document
// reader expects; pages[i] becomes page startPage+i.
func WriteChapterText(t testing.TB, cfg *config.Config, code string, startPage int, pages ...string) string {
	t.Helper()

	var sb strings.Builder
	for i, body := range pages {
		fmt.Fprintf(&sb, "--- PAGE %d ---\n", startPage+i)
		sb.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			sb.WriteString("\n")
		}
	}

	path := filepath.Join(cfg.Paths.ManualDir, strings.ToUpper(code)+".txt")
	writeFile(t, path, sb.String())
	return path
}

// WriteRecordYAML writes one catalog record file and returns its path.
func WriteRecordYAML(t testing.TB, cfg *config.Config, name, content string) string {
	t.Helper()

	path := filepath.Join(cfg.Paths.CatalogDir, name)
	writeFile(t, path, content)
	return path
}

func writeFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
