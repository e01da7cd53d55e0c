package inspect_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/fwojciec/spancheck"
	"github.com/fwojciec/spancheck/html"
	"github.com/fwojciec/spancheck/inspect"
	"github.com/fwojciec/spancheck/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pages maps page ID to its renditions. A missing rendition reads as
// ENOTFOUND.
type pages map[int]map[spancheck.View]string

func (p pages) dataset(annotations spancheck.PageAnnotations) *mock.Dataset {
	return &mock.Dataset{
		FindAnnotationsFn: func(_ context.Context, _ string) (spancheck.PageAnnotations, error) {
			return annotations, nil
		},
		FindPageIDsFn: func(_ context.Context, _ string) ([]int, error) {
			ids := make([]int, 0, len(p))
			for id := range p {
				ids = append(ids, id)
			}
			slices.Sort(ids)
			return ids, nil
		},
		ReadPageFn: func(_ context.Context, _ string, pageID int, view spancheck.View) (string, error) {
			raw, ok := p[pageID][view]
			if !ok {
				return "", spancheck.Errorf(spancheck.ENOTFOUND, "%s file not found: page %d", view, pageID)
			}
			return raw, nil
		},
		PageSizeFn: func(_ context.Context, _ string, pageID int, view spancheck.View) (int64, error) {
			raw, ok := p[pageID][view]
			if !ok {
				return 0, spancheck.Errorf(spancheck.ENOTFOUND, "%s file not found: page %d", view, pageID)
			}
			return int64(len(raw)), nil
		},
	}
}

func TestInspector_InspectPage(t *testing.T) {
	t.Parallel()

	t.Run("checks both renditions and stamps category and hash", func(t *testing.T) {
		t.Parallel()

		a := &spancheck.Annotation{
			ID:         0,
			PageID:     1,
			Attribute:  "name",
			HTMLOffset: newOffset(0, 3, 0, 8, "Tokio"),
			TextOffset: newOffset(0, 0, 0, 6, " Tokyo"),
		}
		ds := pages{1: {
			spancheck.ViewHTML: "<p>Tokyo</p>",
			spancheck.ViewText: " Tokyo",
		}}.dataset(nil)
		i := &inspect.Inspector{Dataset: ds, Markup: html.NewMarkup()}

		defects, err := i.InspectPage(context.Background(), "City", 1, []*spancheck.Annotation{a})

		require.NoError(t, err)
		require.Len(t, defects, 2)
		assert.Equal(t, "HTML_OFFSET_MISMATCH", defects[0].Type.String())
		assert.Equal(t, "TEXT_LEADING_OR_TRAILING_SPACE", defects[1].Type.String())
		for _, d := range defects {
			assert.Equal(t, "City", d.Category)
			assert.Equal(t, 1, d.PageID)
			assert.NotEmpty(t, d.ContentHash)
		}
		assert.NotEqual(t, defects[0].ContentHash, defects[1].ContentHash)
	})

	t.Run("reports a missing rendition without an annotation", func(t *testing.T) {
		t.Parallel()

		a := &spancheck.Annotation{
			PageID:     1,
			Attribute:  "name",
			TextOffset: newOffset(0, 0, 0, 5, "Tokyo"),
		}
		ds := pages{1: {spancheck.ViewText: "Tokyo"}}.dataset(nil)
		i := &inspect.Inspector{Dataset: ds, Markup: html.NewMarkup()}

		defects, err := i.InspectPage(context.Background(), "City", 1, []*spancheck.Annotation{a})

		require.NoError(t, err)
		require.Len(t, defects, 1)
		d := defects[0]
		assert.Equal(t, "HTML_FILE_NOT_FOUND", d.Type.String())
		assert.Nil(t, d.AnnotationID)
		assert.Equal(t, "HTML file not found: page 1", d.Detail)
	})

	t.Run("returns read errors", func(t *testing.T) {
		t.Parallel()

		ds := &mock.Dataset{
			ReadPageFn: func(_ context.Context, _ string, _ int, _ spancheck.View) (string, error) {
				return "", errors.New("disk on fire")
			},
		}
		i := &inspect.Inspector{Dataset: ds, Markup: html.NewMarkup()}

		_, err := i.InspectPage(context.Background(), "City", 1, nil)

		require.EqualError(t, err, "disk on fire")
	})

	t.Run("returns an error for an empty rendition", func(t *testing.T) {
		t.Parallel()

		ds := pages{1: {spancheck.ViewHTML: "", spancheck.ViewText: "x"}}.dataset(nil)
		i := &inspect.Inspector{Dataset: ds, Markup: html.NewMarkup()}

		_, err := i.InspectPage(context.Background(), "City", 1, nil)

		require.Error(t, err)
		assert.Equal(t, spancheck.EINVALID, spancheck.ErrorCode(err))
	})
}

func TestInspector_InspectCategory(t *testing.T) {
	t.Parallel()

	t.Run("inspects every annotated page and sorts the defects", func(t *testing.T) {
		t.Parallel()

		annotations := spancheck.PageAnnotations{
			2: {{ID: 0, PageID: 2, Attribute: "name", TextOffset: newOffset(0, 0, 0, 1, "(")}},
			1: {{ID: 1, PageID: 1, Attribute: "name", TextOffset: newOffset(0, 0, 0, 1, "x")}},
			3: {{ID: 2, PageID: 3, Attribute: "name", TextOffset: newOffset(0, 0, 0, 1, "b")}},
		}
		ds := pages{
			1: {spancheck.ViewHTML: "<p>y</p>", spancheck.ViewText: "y"},
			2: {spancheck.ViewHTML: "<p>(</p>", spancheck.ViewText: "("},
			3: {spancheck.ViewText: "b"},
		}.dataset(annotations)

		var events []inspect.ProgressEvent
		i := &inspect.Inspector{Dataset: ds, Markup: html.NewMarkup(), Concurrency: 2}
		result, err := i.InspectCategory(context.Background(), "City", func(e inspect.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, "City", result.Category)
		assert.Equal(t, 3, result.Pages)
		require.Len(t, result.Defects, 3)
		assert.Equal(t, "HTML_FILE_NOT_FOUND", result.Defects[0].Type.String())
		assert.Equal(t, 3, result.Defects[0].PageID)
		assert.Equal(t, "TEXT_OFFSET_MISMATCH", result.Defects[1].Type.String())
		assert.Equal(t, 1, result.Defects[1].PageID)
		assert.Equal(t, "TEXT_UNPAIRED_BRACES", result.Defects[2].Type.String())
		assert.Equal(t, 2, result.Defects[2].PageID)

		assert.Equal(t, 1, result.Counts[spancheck.DefectType{View: spancheck.ViewHTML, Kind: spancheck.DefectMissingSourceFile}])
		assert.Equal(t, 1, result.Counts[spancheck.DefectType{View: spancheck.ViewText, Kind: spancheck.DefectOffsetMismatch}])

		require.Len(t, events, 3)
		last := events[len(events)-1]
		assert.Equal(t, 3, last.Completed)
		assert.Equal(t, 3, last.Total)
		assert.Equal(t, 3, last.Defects)
	})

	t.Run("returns the annotation read error", func(t *testing.T) {
		t.Parallel()

		ds := &mock.Dataset{
			FindAnnotationsFn: func(_ context.Context, category string) (spancheck.PageAnnotations, error) {
				return nil, spancheck.Errorf(spancheck.ENOTFOUND, "no annotations for %q", category)
			},
		}
		i := &inspect.Inspector{Dataset: ds, Markup: html.NewMarkup()}

		_, err := i.InspectCategory(context.Background(), "City", nil)

		assert.Equal(t, spancheck.ENOTFOUND, spancheck.ErrorCode(err))
	})

	t.Run("fails when a page fails", func(t *testing.T) {
		t.Parallel()

		annotations := spancheck.PageAnnotations{1: nil, 2: nil}
		ds := &mock.Dataset{
			FindAnnotationsFn: func(_ context.Context, _ string) (spancheck.PageAnnotations, error) {
				return annotations, nil
			},
			ReadPageFn: func(_ context.Context, _ string, pageID int, _ spancheck.View) (string, error) {
				if pageID == 2 {
					return "", errors.New("boom")
				}
				return "x", nil
			},
		}
		i := &inspect.Inspector{Dataset: ds, Markup: html.NewMarkup()}

		_, err := i.InspectCategory(context.Background(), "City", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "page 2")
		assert.Contains(t, err.Error(), "boom")
	})
}
