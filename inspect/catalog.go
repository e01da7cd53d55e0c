package inspect

import (
	"context"
	"fmt"
	"slices"

	"github.com/fwojciec/spancheck"
)

// Cataloger lists the pages of a dataset together with their size, page
// information and annotation counts.
type Cataloger struct {
	Dataset     spancheck.Dataset
	Extractor   spancheck.PageInfoExtractor
	Concurrency int
}

// CatalogPage describes one page. A missing rendition has size zero and a
// page without markup has no page information.
func (c *Cataloger) CatalogPage(ctx context.Context, category string, pageID int) (*spancheck.CatalogEntry, error) {
	entry := &spancheck.CatalogEntry{PageID: pageID}

	htmlSize, err := c.pageSize(ctx, category, pageID, spancheck.ViewHTML)
	if err != nil {
		return nil, err
	}
	entry.HTMLFileSize = htmlSize
	textSize, err := c.pageSize(ctx, category, pageID, spancheck.ViewText)
	if err != nil {
		return nil, err
	}
	entry.TextFileSize = textSize

	if htmlSize == 0 {
		return entry, nil
	}
	raw, err := c.Dataset.ReadPage(ctx, category, pageID, spancheck.ViewHTML)
	if err != nil {
		return nil, err
	}
	info, err := c.Extractor.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("extract page info: %w", err)
	}
	entry.Title = info.Title
	entry.IsDisambiguationPage = info.IsDisambiguationPage
	entry.InfoboxCount = info.InfoboxCount
	return entry, nil
}

func (c *Cataloger) pageSize(ctx context.Context, category string, pageID int, view spancheck.View) (int64, error) {
	size, err := c.Dataset.PageSize(ctx, category, pageID, view)
	if spancheck.ErrorCode(err) == spancheck.ENOTFOUND {
		return 0, nil
	}
	return size, err
}

// CatalogCategory catalogs every page of a category, several pages at a
// time. Pages that appear in the annotation file get annotation counts.
func (c *Cataloger) CatalogCategory(ctx context.Context, category string, progress ProgressFunc) (*spancheck.Catalog, error) {
	annotations, err := c.Dataset.FindAnnotations(ctx, category)
	if err != nil {
		return nil, err
	}
	pageIDs, err := c.Dataset.FindPageIDs(ctx, category)
	if err != nil {
		return nil, err
	}

	entries, err := forEachPage(ctx, pageIDs, c.Concurrency,
		func(ctx context.Context, pageID int) (*spancheck.CatalogEntry, error) {
			return c.CatalogPage(ctx, category, pageID)
		},
		func(pageID, completed int, _ *spancheck.CatalogEntry) {
			if progress != nil {
				progress(ProgressEvent{
					Category:  category,
					PageID:    pageID,
					Completed: completed,
					Total:     len(pageIDs),
				})
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", category, err)
	}

	attributes := make(map[string]bool)
	for _, entry := range entries {
		page, ok := annotations[entry.PageID]
		if !ok {
			continue
		}
		n := len(page)
		entry.AnnotationCount = &n
		entry.AnnotationCountByAttribute = make(map[string]int)
		for _, a := range page {
			entry.AnnotationCountByAttribute[a.Attribute]++
		}
	}
	for _, page := range annotations {
		for _, a := range page {
			attributes[a.Attribute] = true
		}
	}

	catalog := &spancheck.Catalog{
		Category: category,
		Entries:  entries,
	}
	for attr := range attributes {
		catalog.Attributes = append(catalog.Attributes, attr)
	}
	slices.Sort(catalog.Attributes)
	return catalog, nil
}
