// Package inspect checks the annotations and pages of a dataset for
// data-quality defects.
package inspect

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/spancheck"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages inspected at once when
// Inspector.Concurrency is not set.
const DefaultConcurrency = 10

// Inspector checks the pages of a dataset.
type Inspector struct {
	Dataset     spancheck.Dataset
	Markup      spancheck.Markup
	Concurrency int
}

// ProgressEvent reports progress through the pages of a category.
type ProgressEvent struct {
	Category  string
	PageID    int
	Completed int
	Total     int
	Defects   int
}

// ProgressFunc is a callback for reporting inspection progress. It is
// called from the goroutine that called the inspection method.
type ProgressFunc func(event ProgressEvent)

// Result is the outcome of inspecting the annotations of one category.
type Result struct {
	Category string
	Pages    int

	// Defects are sorted with spancheck.CompareDefects.
	Defects []*spancheck.Defect
	Counts  spancheck.DefectCounts
}

// InspectPage checks the annotations of one page against both renditions.
// A missing rendition is reported as a defect of that view; its
// annotations are not checked.
func (i *Inspector) InspectPage(ctx context.Context, category string, pageID int, annotations []*spancheck.Annotation) ([]*spancheck.Defect, error) {
	var defects []*spancheck.Defect
	for _, view := range spancheck.Views {
		raw, err := i.Dataset.ReadPage(ctx, category, pageID, view)
		if spancheck.ErrorCode(err) == spancheck.ENOTFOUND {
			defects = append(defects, &spancheck.Defect{
				Category: category,
				Type:     spancheck.DefectType{View: view, Kind: spancheck.DefectMissingSourceFile},
				PageID:   pageID,
				Detail:   spancheck.ErrorMessage(err),
			})
			continue
		} else if err != nil {
			return nil, err
		}

		content, err := spancheck.NewContent(raw)
		if err != nil {
			return nil, fmt.Errorf("page %d %s: %w", pageID, view, err)
		}

		var found []*spancheck.Defect
		switch view {
		case spancheck.ViewHTML:
			found, err = i.InspectMarkup(content, annotations)
		case spancheck.ViewText:
			found, err = i.InspectText(content, annotations)
		}
		if err != nil {
			return nil, fmt.Errorf("page %d %s: %w", pageID, view, err)
		}

		hash := computeHash(raw)
		for _, d := range found {
			d.Category = category
			d.PageID = pageID
			d.ContentHash = hash
		}
		defects = append(defects, found...)
	}
	return defects, nil
}

type pageResult[T any] struct {
	position int
	pageID   int
	value    T
	err      error
}

// forEachPage runs fn for every page ID with at most concurrency calls in
// flight. Results are returned in the order of pageIDs. The first error
// cancels the remaining calls.
func forEachPage[T any](ctx context.Context, pageIDs []int, concurrency int, fn func(ctx context.Context, pageID int) (T, error), done func(pageID, completed int, value T)) ([]T, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult[T], len(pageIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for pos, id := range pageIDs {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				value, err := fn(gctx, id)
				resultCh <- pageResult[T]{position: pos, pageID: id, value: value, err: err}
				return err
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	values := make([]T, len(pageIDs))
	var firstErr error
	for result := range resultCh {
		if result.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("page %d: %w", result.pageID, result.err)
			}
			continue
		}
		values[result.position] = result.value
		n := completed.Add(1)
		if done != nil && firstErr == nil {
			done(result.pageID, int(n), result.value)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// InspectCategory checks the annotations of every annotated page of a
// category, several pages at a time.
func (i *Inspector) InspectCategory(ctx context.Context, category string, progress ProgressFunc) (*Result, error) {
	annotations, err := i.Dataset.FindAnnotations(ctx, category)
	if err != nil {
		return nil, err
	}
	pageIDs := annotations.PageIDs()

	var total int
	pages, err := forEachPage(ctx, pageIDs, i.Concurrency,
		func(ctx context.Context, pageID int) ([]*spancheck.Defect, error) {
			return i.InspectPage(ctx, category, pageID, annotations[pageID])
		},
		func(pageID, completed int, defects []*spancheck.Defect) {
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
		return nil, fmt.Errorf("inspect %s: %w", category, err)
	}

	result := &Result{
		Category: category,
		Pages:    len(pageIDs),
		Defects:  make([]*spancheck.Defect, 0, total),
		Counts:   make(spancheck.DefectCounts),
	}
	for _, defects := range pages {
		result.Defects = append(result.Defects, defects...)
	}
	slices.SortStableFunc(result.Defects, spancheck.CompareDefects)
	result.Counts.Add(result.Defects)
	return result, nil
}

// computeHash fingerprints a page rendition.
func computeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
