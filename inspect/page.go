package inspect

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/spancheck"
)

// reservedCharacters are the characters that must be escaped in markup
// text content.
const reservedCharacters = "<>"

// PageResult is the outcome of inspecting the markup of every page of one
// category.
type PageResult struct {
	Category string
	Pages    int
	Defects  []*spancheck.PageDefect
	Counts   map[spancheck.PageDefectKind]int
}

// InspectPageMarkup checks that the markup rendition of a page can be
// cleaned and that no reserved character survives cleaning. Problems
// reading or cleaning the page are reported as defects, not errors; only
// cancellation is returned as an error.
func (i *Inspector) InspectPageMarkup(ctx context.Context, category string, pageID int) ([]*spancheck.PageDefect, error) {
	newDefect := func(kind spancheck.PageDefectKind, detail string) []*spancheck.PageDefect {
		return []*spancheck.PageDefect{{Category: category, Kind: kind, PageID: pageID, Detail: detail}}
	}

	raw, err := i.Dataset.ReadPage(ctx, category, pageID, spancheck.ViewHTML)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return newDefect(spancheck.PageCleanError, errorDetail(err)), nil
	}
	content, err := spancheck.NewContent(raw)
	if err != nil {
		return newDefect(spancheck.PageCleanError, errorDetail(err)), nil
	}
	clean, err := i.Markup.Clean(content)
	if err != nil {
		return newDefect(spancheck.PageCleanError, errorDetail(err)), nil
	}

	if clean.Len() != content.Len() {
		return newDefect(spancheck.PageCleanError,
			fmt.Sprintf("Content length mismatch: %d != %d", content.Len(), clean.Len())), nil
	}
	if strings.ContainsAny(clean.Raw(), reservedCharacters) {
		return newDefect(spancheck.PageUnescapedReservedCharacter,
			"Contains html reserved character: "+joinRunes(reservedCharacters, ",")), nil
	}
	return nil, nil
}

// InspectPages checks the markup of every page of a category, several
// pages at a time.
func (i *Inspector) InspectPages(ctx context.Context, category string, progress ProgressFunc) (*PageResult, error) {
	pageIDs, err := i.Dataset.FindPageIDs(ctx, category)
	if err != nil {
		return nil, err
	}

	var total int
	pages, err := forEachPage(ctx, pageIDs, i.Concurrency,
		func(ctx context.Context, pageID int) ([]*spancheck.PageDefect, error) {
			return i.InspectPageMarkup(ctx, category, pageID)
		},
		func(pageID, completed int, defects []*spancheck.PageDefect) {
			total += len(defects)
			if progress != nil {
				progress(ProgressEvent{
					Category:  category,
					PageID:    pageID,
					Completed: completed,
					Total:     len(pageIDs),
					Defects:   total,
				})
			}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("inspect %s pages: %w", category, err)
	}

	result := &PageResult{
		Category: category,
		Pages:    len(pageIDs),
		Counts:   make(map[spancheck.PageDefectKind]int),
	}
	for _, defects := range pages {
		for _, d := range defects {
			result.Defects = append(result.Defects, d)
			result.Counts[d.Kind]++
		}
	}
	slices.SortStableFunc(result.Defects, func(a, b *spancheck.PageDefect) int {
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		return cmp.Compare(a.PageID, b.PageID)
	})
	return result, nil
}

func joinRunes(s, sep string) string {
	parts := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		parts = append(parts, string(r))
	}
	return strings.Join(parts, sep)
}

// errorDetail describes err for a report. Application errors are described
// by their message.
func errorDetail(err error) string {
	if spancheck.ErrorCode(err) == spancheck.EINTERNAL {
		return err.Error()
	}
	return spancheck.ErrorMessage(err)
}
