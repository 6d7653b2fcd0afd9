package document

import (
	"context"

	"refmatch/internal/config"
)

// Page is one physical source page within a chapter's page range. Text may
// be empty for unreadable pages.
type Page struct {
	Number int
	Text   string
}

// Source yields, for a chapter's page range, an ordered sequence of pages.
type Source interface {
	Pages(ctx context.Context, chapter config.Chapter) ([]Page, error)
}
