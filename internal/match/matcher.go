package match

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"refmatch/internal/catalog"
	"refmatch/internal/config"
	"refmatch/internal/logging"
	"refmatch/internal/segment"
	"refmatch/internal/textutil"
)

// Match is one qualifying (record, section) pair.
type Match struct {
	Title       string  `json:"title"`
	Chapter     string  `json:"chapter"`
	StartPage   int     `json:"startPage"`
	Score       float64 `json:"score"`
	MatchedTerm string  `json:"matchedTerm"`
	TextLength  int     `json:"textLength"`
	Text        string  `json:"text"`
}

// MatchSet is the ranked, bounded list of best-matching sections for one
// record. A record with no qualifying matches has no MatchSet at all.
type MatchSet struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	MatchCount int     `json:"matchCount"`
	BestScore  float64 `json:"bestScore"`
	Matches    []Match `json:"matches"`
}

// candidate caches the per-section derived forms the scorer needs.
type candidate struct {
	section    segment.Section
	normTitle  string
	bodyWindow string
}

// Pool is the immutable, globally ordered section pool shared by all
// matching workers. Ordering by (chapter, start page, title) makes
// tie-breaks independent of input accumulation order.
type Pool struct {
	candidates []candidate
}

// NewPool builds a pool from matchable sections, deriving normalized
// titles and lowered body windows once.
func NewPool(sections []segment.Section, bodyWindow int) *Pool {
	ordered := make([]segment.Section, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Chapter != ordered[j].Chapter {
			return ordered[i].Chapter < ordered[j].Chapter
		}
		if ordered[i].StartPage != ordered[j].StartPage {
			return ordered[i].StartPage < ordered[j].StartPage
		}
		return ordered[i].Title < ordered[j].Title
	})

	pool := &Pool{candidates: make([]candidate, 0, len(ordered))}
	for _, section := range ordered {
		window := strings.ToLower(section.Body)
		if bodyWindow > 0 && len(window) > bodyWindow {
			cut := bodyWindow
			// Back off to a rune boundary so a multi-byte character is
			// never split at the window edge.
			for cut > 0 && !utf8.RuneStart(window[cut]) {
				cut--
			}
			window = window[:cut]
		}
		pool.candidates = append(pool.candidates, candidate{
			section:    section,
			normTitle:  textutil.Normalize(section.Title),
			bodyWindow: window,
		})
	}
	return pool
}

// Size returns the number of sections in the pool.
func (p *Pool) Size() int { return len(p.candidates) }

// Matcher scores records against a section pool.
type Matcher struct {
	cfg    config.Matching
	scorer Scorer
	pool   *Pool
	logger *slog.Logger
}

// NewMatcher creates a matcher over the given pool.
func NewMatcher(cfg config.Matching, pool *Pool, logger *slog.Logger) *Matcher {
	return &Matcher{
		cfg: cfg,
		scorer: Scorer{
			FuzzyThreshold: cfg.FuzzyThreshold,
			FuzzyWeight:    cfg.FuzzyWeight,
			BodyScore:      cfg.MinScore,
		},
		pool:   pool,
		logger: logging.NewComponentLogger(logger, "match"),
	}
}

// MatchRecord scores every pool section against the record's terms and
// returns the ranked, bounded match set. ok is false when the record has
// no usable terms or no section reaches the retention threshold.
func (m *Matcher) MatchRecord(record catalog.Record) (MatchSet, bool) {
	terms := catalog.DeriveTerms(record, m.cfg.AliasLanguage, m.cfg.MinTermLength)
	if len(terms) == 0 {
		m.logger.Debug("record has no usable terms", logging.String(logging.FieldRecord, record.ID()))
		return MatchSet{}, false
	}

	var matches []Match
	for _, cand := range m.pool.candidates {
		score, term := m.bestTerm(terms, cand)
		if score < m.cfg.MinScore {
			continue
		}
		matches = append(matches, Match{
			Title:       cand.section.Title,
			Chapter:     cand.section.Chapter,
			StartPage:   cand.section.StartPage,
			Score:       round3(score),
			MatchedTerm: term,
			TextLength:  cand.section.Length(),
			Text:        cand.section.Body,
		})
	}
	if len(matches) == 0 {
		return MatchSet{}, false
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].TextLength > matches[j].TextLength
	})
	if len(matches) > m.cfg.TopK {
		matches = matches[:m.cfg.TopK]
	}

	return MatchSet{
		Name:       record.Name,
		Category:   record.Category,
		MatchCount: len(matches),
		BestScore:  matches[0].Score,
		Matches:    matches,
	}, true
}

// bestTerm returns the maximum score over the record's terms; the first
// term reaching the maximum wins ties.
func (m *Matcher) bestTerm(terms []string, cand candidate) (float64, string) {
	var best float64
	var bestTerm string
	for _, term := range terms {
		if score := m.scorer.Score(term, cand.normTitle, cand.bodyWindow); score > best {
			best = score
			bestTerm = term
		}
	}
	return best, bestTerm
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
