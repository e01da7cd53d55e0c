package spancheck_test

import (
	"slices"
	"testing"

	"github.com/fwojciec/spancheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefectTypes(t *testing.T) {
	t.Parallel()

	t.Run("lists types in report order", func(t *testing.T) {
		t.Parallel()

		names := make([]string, 0, len(spancheck.DefectTypes))
		for _, dt := range spancheck.DefectTypes {
			names = append(names, dt.String())
		}

		assert.Equal(t, []string{
			"HTML_FILE_NOT_FOUND",
			"HTML_OFFSET_MISMATCH",
			"HTML_LEADING_OR_TRAILING_SPACE",
			"HTML_WITH_BLOCK_TAG",
			"HTML_INVISIBLE_TEXT",
			"HTML_UNPAIRED_BRACES",
			"HTML_OVERLAPPED_ANNOTATIONS",
			"TEXT_FILE_NOT_FOUND",
			"TEXT_OFFSET_MISMATCH",
			"TEXT_LEADING_OR_TRAILING_SPACE",
			"TEXT_UNPAIRED_BRACES",
			"TEXT_OVERLAPPED_ANNOTATIONS",
		}, names)
	})

	t.Run("declaration order matches compare order", func(t *testing.T) {
		t.Parallel()

		assert.True(t, slices.IsSortedFunc(spancheck.DefectTypes, spancheck.DefectType.Compare))
	})
}

func TestParseDefectType(t *testing.T) {
	t.Parallel()

	t.Run("parses known name", func(t *testing.T) {
		t.Parallel()

		dt, err := spancheck.ParseDefectType("TEXT_UNPAIRED_BRACES")

		require.NoError(t, err)
		assert.Equal(t, spancheck.DefectType{View: spancheck.ViewText, Kind: spancheck.DefectUnpairedDelimiters}, dt)
	})

	t.Run("rejects markup-only kind in text view", func(t *testing.T) {
		t.Parallel()

		_, err := spancheck.ParseDefectType("TEXT_WITH_BLOCK_TAG")

		assert.Equal(t, spancheck.EINVALID, spancheck.ErrorCode(err))
	})
}

func TestCompareDefects(t *testing.T) {
	t.Parallel()

	one, two := 1, 2
	mismatch := spancheck.DefectType{View: spancheck.ViewHTML, Kind: spancheck.DefectOffsetMismatch}
	missing := spancheck.DefectType{View: spancheck.ViewHTML, Kind: spancheck.DefectMissingSourceFile}
	textMismatch := spancheck.DefectType{View: spancheck.ViewText, Kind: spancheck.DefectOffsetMismatch}

	defects := []*spancheck.Defect{
		{Category: "City", Type: textMismatch, PageID: 1, AnnotationID: &one},
		{Category: "City", Type: mismatch, PageID: 2, AnnotationID: &one},
		{Category: "City", Type: mismatch, PageID: 1, AnnotationID: &two},
		{Category: "City", Type: mismatch, PageID: 1, AnnotationID: &one},
		{Category: "City", Type: missing, PageID: 9},
		{Category: "Airport", Type: textMismatch, PageID: 5, AnnotationID: &one},
	}

	slices.SortFunc(defects, spancheck.CompareDefects)

	assert.Equal(t, "Airport", defects[0].Category)
	assert.Equal(t, missing, defects[1].Type)
	assert.Equal(t, 1, defects[2].PageID)
	assert.Equal(t, 1, *defects[2].AnnotationID)
	assert.Equal(t, 2, *defects[3].AnnotationID)
	assert.Equal(t, 2, defects[4].PageID)
	assert.Equal(t, textMismatch, defects[5].Type)
}

func TestDefectCounts_Add(t *testing.T) {
	t.Parallel()

	mismatch := spancheck.DefectType{View: spancheck.ViewText, Kind: spancheck.DefectOffsetMismatch}
	counts := spancheck.DefectCounts{}

	counts.Add([]*spancheck.Defect{{Type: mismatch}, {Type: mismatch}})

	assert.Equal(t, 2, counts[mismatch])
}
