package spancheck

import (
	"context"
	"slices"
	"strconv"
)

// Offset is a span in one rendition of a page. Start is inclusive and End
// is exclusive. Text is the text the annotator claims the span covers and
// is nil when the record carries none.
type Offset struct {
	Start LineOffset `json:"start"`
	End   LineOffset `json:"end"`
	Text  *string    `json:"text,omitempty"`
}

// Annotation is a single annotated attribute value on a page. Either offset
// may be absent because the markup and plain-text renditions are annotated
// independently.
type Annotation struct {
	// ID is the zero-based line number of the record in its annotation file.
	ID         int     `json:"-"`
	PageID     int     `json:"page_id"`
	Title      string  `json:"title,omitempty"`
	ENE        string  `json:"ene,omitempty"`
	Attribute  string  `json:"attribute"`
	HTMLOffset *Offset `json:"html_offset,omitempty"`
	TextOffset *Offset `json:"text_offset,omitempty"`
}

// Validate returns an error if the annotation contains invalid fields.
func (a *Annotation) Validate() error {
	if a.Attribute == "" {
		return Errorf(EINVALID, "annotation %d: attribute required", a.ID)
	}
	if a.PageID < 0 {
		return Errorf(EINVALID, "annotation %d: invalid page ID %d", a.ID, a.PageID)
	}
	return nil
}

// OffsetFor returns the annotation's offset in the given view.
func (a *Annotation) OffsetFor(view View) *Offset {
	switch view {
	case ViewHTML:
		return a.HTMLOffset
	case ViewText:
		return a.TextOffset
	}
	return nil
}

// PageAnnotations groups the annotations of one category by page ID.
type PageAnnotations map[int][]*Annotation

// PageIDs returns the page IDs in ascending order.
func (p PageAnnotations) PageIDs() []int {
	ids := make([]int, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Dataset provides read access to an arranged dataset: one annotation file
// per category plus the markup and plain-text renditions of each page.
type Dataset interface {
	// FindAnnotations reads every annotation of a category.
	// Returns ENOTFOUND if the category has no annotation file.
	FindAnnotations(ctx context.Context, category string) (PageAnnotations, error)

	// FindPageIDs returns the IDs of all pages with at least one rendition,
	// in ascending order.
	FindPageIDs(ctx context.Context, category string) ([]int, error)

	// ReadPage returns the decoded text of a page rendition with line
	// endings normalized to '\n'.
	// Returns ENOTFOUND if the rendition does not exist.
	ReadPage(ctx context.Context, category string, pageID int, view View) (string, error)

	// PageSize returns the size in bytes of a page rendition.
	// Returns ENOTFOUND if the rendition does not exist.
	PageSize(ctx context.Context, category string, pageID int, view View) (int64, error)
}

// FormatAnnotationID renders an optional annotation ID for reports.
func FormatAnnotationID(id *int) string {
	if id == nil {
		return ""
	}
	return strconv.Itoa(*id)
}
