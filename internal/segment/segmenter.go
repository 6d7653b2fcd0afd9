package segment

import (
	"strings"

	"refmatch/internal/document"
)

// IntroTitle names the implicit leading section that accumulates lines
// appearing before the first detected header.
const IntroTitle = "intro"

// Section is a titled span of body text within one chapter, delimited by
// detected headers.
type Section struct {
	Title     string
	Chapter   string
	StartPage int
	Body      string
}

// Length returns the body length in bytes.
func (s Section) Length() int { return len(s.Body) }

// Preview returns at most n characters of the body.
func (s Section) Preview(n int) string {
	if n <= 0 || len(s.Body) <= n {
		return s.Body
	}
	return s.Body[:n]
}

// Segmenter applies an ordered rule list to page text.
type Segmenter struct {
	rules []Rule
}

// New creates a segmenter. With no rules supplied the default rule order
// is used.
func New(rules ...Rule) *Segmenter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Segmenter{rules: rules}
}

// Segment walks the chapter's pages line by line and emits ordered
// sections. Detecting a header closes the current section (kept only when
// its body is non-empty) and opens a new one at the current page; the end
// of the page range force-closes the last open section. Lines before the
// first header accumulate into an implicit "intro" section.
func (s *Segmenter) Segment(chapterCode string, pages []document.Page) []Section {
	var sections []Section
	current := Section{Title: IntroTitle, Chapter: chapterCode}
	if len(pages) > 0 {
		current.StartPage = pages[0].Number
	}

	var body strings.Builder
	flush := func() {
		current.Body = body.String()
		if strings.TrimSpace(current.Body) != "" {
			sections = append(sections, current)
		}
		body.Reset()
	}

	for _, page := range pages {
		for _, line := range strings.Split(page.Text, "\n") {
			trimmed := strings.TrimSpace(line)
			if len(trimmed) < 3 {
				continue
			}
			if title, ok := s.header(trimmed); ok {
				flush()
				current = Section{Title: title, Chapter: chapterCode, StartPage: page.Number}
				continue
			}
			body.WriteString(trimmed)
			body.WriteByte('\n')
		}
	}
	flush()
	return sections
}

func (s *Segmenter) header(line string) (string, bool) {
	for _, rule := range s.rules {
		if rule.Matches(line) {
			return line, true
		}
	}
	return "", false
}
