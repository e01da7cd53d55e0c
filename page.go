package spancheck

import "context"

// PageDefectKind classifies a problem with a page's markup rendition
// itself rather than with any annotation on it.
type PageDefectKind int

const (
	// PageCleanError means the markup could not be read or cleaned without
	// changing its length.
	PageCleanError PageDefectKind = iota

	// PageUnescapedReservedCharacter means the cleaned markup still contains
	// '<' or '>', i.e. the page has reserved characters that are not escaped.
	PageUnescapedReservedCharacter
)

// PageDefectKinds lists every page defect kind in report order.
var PageDefectKinds = []PageDefectKind{PageCleanError, PageUnescapedReservedCharacter}

func (k PageDefectKind) String() string {
	switch k {
	case PageCleanError:
		return "CLEAN_HTML_ERROR"
	case PageUnescapedReservedCharacter:
		return "WITH_HTML_UNESCAPED_RESERVED_CHARACTER"
	}
	return "UNKNOWN"
}

// PageDefect is a problem found while inspecting a page rendition.
type PageDefect struct {
	Category string         `json:"category"`
	Kind     PageDefectKind `json:"kind"`
	PageID   int            `json:"pageId"`
	Detail   string         `json:"detail"`
}

// PageInfo describes a page for the dataset catalog.
type PageInfo struct {
	Title                string `json:"title"`
	IsDisambiguationPage bool   `json:"isDisambiguationPage"`
	InfoboxCount         int    `json:"infoboxCount"`
}

// PageInfoExtractor reads catalog information from page markup.
type PageInfoExtractor interface {
	Extract(html string) (*PageInfo, error)
}

// Reporter writes inspection and catalog reports.
type Reporter interface {
	// WriteDefects writes the annotation defects of one category.
	WriteDefects(ctx context.Context, category string, defects []*Defect) error

	// WriteDefectSummary writes defect counts per category, one column per
	// entry of DefectTypes.
	WriteDefectSummary(ctx context.Context, counts []CategoryDefectCounts) error

	// WritePageDefects writes the page defects of one category.
	WritePageDefects(ctx context.Context, category string, defects []*PageDefect) error

	// WritePageDefectSummary writes page defect counts per category.
	WritePageDefectSummary(ctx context.Context, counts []CategoryPageDefectCounts) error

	// WriteCatalog writes the page catalog of one category.
	WriteCatalog(ctx context.Context, catalog *Catalog) error

	// WriteCatalogSummary writes the per-category catalog totals.
	WriteCatalogSummary(ctx context.Context, catalogs []*Catalog) error
}

// CategoryDefectCounts is a summary row of the annotation report.
type CategoryDefectCounts struct {
	Category string
	Counts   DefectCounts
}

// CategoryPageDefectCounts is a summary row of the page report.
type CategoryPageDefectCounts struct {
	Category string
	Counts   map[PageDefectKind]int
}
