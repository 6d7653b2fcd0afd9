package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"refmatch/internal/config"
	"refmatch/internal/services"
)

// pageMarker delimits pages in pre-extracted chapter text.
var pageMarker = regexp.MustCompile(`(?m)^--- PAGE (\d+) ---[ \t]*$`)

// TextDir reads chapter text from a directory of <CODE>.txt files.
type TextDir struct {
	dir string
}

// NewTextDir creates a source over the given directory.
func NewTextDir(dir string) *TextDir {
	return &TextDir{dir: dir}
}

// Path returns the file path backing a chapter code.
func (t *TextDir) Path(code string) string {
	return filepath.Join(t.dir, strings.ToUpper(strings.TrimSpace(code))+".txt")
}

// Pages parses the chapter file and returns pages restricted to the
// chapter's page range, ordered by page number. A page marker with no
// following text yields an empty page rather than an error.
func (t *TextDir) Pages(ctx context.Context, chapter config.Chapter) ([]Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := t.Path(chapter.Code)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "document", "read chapter", chapter.Code, err)
		}
		return nil, services.Wrap(services.ErrSource, "document", "read chapter", chapter.Code, err)
	}

	pages, err := splitPages(string(data))
	if err != nil {
		return nil, services.Wrap(services.ErrSource, "document", "parse chapter", chapter.Code, err)
	}

	inRange := pages[:0]
	for _, page := range pages {
		if page.Number >= chapter.StartPage && page.Number < chapter.EndPage {
			inRange = append(inRange, page)
		}
	}
	return inRange, nil
}

// FullText returns the chapter file contents without page splitting, for
// verbatim context search.
func (t *TextDir) FullText(ctx context.Context, code string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(t.Path(code))
	if err != nil {
		if os.IsNotExist(err) {
			return "", services.Wrap(services.ErrNotFound, "document", "read chapter", code, err)
		}
		return "", services.Wrap(services.ErrSource, "document", "read chapter", code, err)
	}
	return string(data), nil
}

// PageAt returns the page number governing a byte offset in chapter text:
// the number of the last marker preceding the offset, or 0 when the offset
// precedes every marker.
func PageAt(text string, offset int) int {
	if offset < 0 || offset > len(text) {
		return 0
	}
	markers := pageMarker.FindAllStringSubmatchIndex(text[:offset], -1)
	if len(markers) == 0 {
		return 0
	}
	last := markers[len(markers)-1]
	number, err := strconv.Atoi(text[last[2]:last[3]])
	if err != nil {
		return 0
	}
	return number
}

func splitPages(text string) ([]Page, error) {
	markers := pageMarker.FindAllStringSubmatchIndex(text, -1)
	if len(markers) == 0 {
		return nil, fmt.Errorf("no page markers found")
	}
	pages := make([]Page, 0, len(markers))
	for i, marker := range markers {
		number, err := strconv.Atoi(text[marker[2]:marker[3]])
		if err != nil {
			return nil, fmt.Errorf("parse page number: %w", err)
		}
		bodyStart := marker[1]
		bodyEnd := len(text)
		if i+1 < len(markers) {
			bodyEnd = markers[i+1][0]
		}
		body := strings.TrimLeft(text[bodyStart:bodyEnd], "\n")
		pages = append(pages, Page{Number: number, Text: body})
	}
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Number < pages[j].Number })
	return pages, nil
}
