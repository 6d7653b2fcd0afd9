package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"refmatch/internal/services"
)

// LoadResult reports the outcome of loading a catalog directory.
type LoadResult struct {
	Records []Record
	Skipped int
}

// LoadDir reads every *.yaml file in dir, in name order. Files that fail
// to parse are skipped and counted; an empty or unreadable catalog is
// fatal since there is nothing to match.
func LoadDir(dir string) (LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return LoadResult{}, services.Wrap(services.ErrConfiguration, "catalog", "read dir", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var result LoadResult
	for _, name := range names {
		record, err := loadFile(filepath.Join(dir, name))
		if err != nil {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, record)
	}

	if len(result.Records) == 0 {
		return result, services.Wrap(services.ErrConfiguration, "catalog", "load", "no usable records in "+dir, nil)
	}
	return result, nil
}

func loadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return Record{}, err
	}
	if record.Slug == "" {
		base := filepath.Base(path)
		record.Slug = strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
	}
	record.Path = path
	return record, nil
}
