package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/spancheck"
	main "github.com/fwojciec/spancheck/cmd/spancheck"
	"github.com/fwojciec/spancheck/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latestRun(runs ...*spancheck.Run) func(context.Context, spancheck.RunFilter) ([]*spancheck.Run, error) {
	return func(context.Context, spancheck.RunFilter) ([]*spancheck.Run, error) {
		return runs, nil
	}
}

func TestDefectsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists the defects of the latest run", func(t *testing.T) {
		t.Parallel()

		annotationID := 3
		var gotFilter spancheck.DefectFilter
		defects := &mock.DefectService{
			FindRunsFn: latestRun(&spancheck.Run{ID: "run-2"}),
			FindDefectsFn: func(_ context.Context, filter spancheck.DefectFilter) ([]*spancheck.Defect, error) {
				gotFilter = filter
				return []*spancheck.Defect{
					{
						Category: "City",
						Type:     spancheck.DefectType{View: spancheck.ViewHTML, Kind: spancheck.DefectMissingSourceFile},
						PageID:   4,
						Detail:   "HTML file not found",
					},
					{
						Category:     "City",
						Type:         spancheck.DefectType{View: spancheck.ViewText, Kind: spancheck.DefectUnpairedDelimiters},
						PageID:       7,
						AnnotationID: &annotationID,
						Detail:       `"(a"`,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Defects: defects}

		err := (&main.DefectsCmd{Category: "City", Type: "TEXT_UNPAIRED_BRACES", Limit: 10}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.RunID)
		assert.Equal(t, "run-2", *gotFilter.RunID)
		require.NotNil(t, gotFilter.Category)
		assert.Equal(t, "City", *gotFilter.Category)
		require.NotNil(t, gotFilter.Type)
		assert.Equal(t, spancheck.DefectType{View: spancheck.ViewText, Kind: spancheck.DefectUnpairedDelimiters}, *gotFilter.Type)
		assert.Nil(t, gotFilter.PageID)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Equal(t,
			"City  HTML_FILE_NOT_FOUND  4  -  HTML file not found\n"+
				"City  TEXT_UNPAIRED_BRACES  7  3  \"(a\"\n",
			stdout.String())
	})

	t.Run("looks up the given run", func(t *testing.T) {
		t.Parallel()

		defects := &mock.DefectService{
			FindRunByIDFn: func(_ context.Context, id string) (*spancheck.Run, error) {
				return nil, spancheck.Errorf(spancheck.ENOTFOUND, "run not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Defects: defects}

		err := (&main.DefectsCmd{RunID: "missing"}).Run(deps)

		assert.Equal(t, spancheck.ENOTFOUND, spancheck.ErrorCode(err))
		assert.Equal(t, "error: run not found\n", stderr.String())
	})

	t.Run("fails when there are no runs", func(t *testing.T) {
		t.Parallel()

		defects := &mock.DefectService{FindRunsFn: latestRun()}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Defects: defects}

		err := (&main.DefectsCmd{}).Run(deps)

		assert.Equal(t, spancheck.ENOTFOUND, spancheck.ErrorCode(err))
	})

	t.Run("rejects unknown defect types", func(t *testing.T) {
		t.Parallel()

		defects := &mock.DefectService{FindRunsFn: latestRun(&spancheck.Run{ID: "run-1"})}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Defects: defects}

		err := (&main.DefectsCmd{Type: "TEXT_WITH_BLOCK_TAG"}).Run(deps)

		assert.Equal(t, spancheck.EINVALID, spancheck.ErrorCode(err))
		assert.Contains(t, stderr.String(), "TEXT_WITH_BLOCK_TAG")
	})

	t.Run("summarizes counts per category", func(t *testing.T) {
		t.Parallel()

		defects := &mock.DefectService{
			FindRunsFn: latestRun(&spancheck.Run{ID: "run-1", DefectCount: 3}),
			CountDefectsFn: func(_ context.Context, runID string) (map[string]spancheck.DefectCounts, error) {
				assert.Equal(t, "run-1", runID)
				return map[string]spancheck.DefectCounts{
					"City": {
						{View: spancheck.ViewText, Kind: spancheck.DefectOffsetMismatch}: 1,
						{View: spancheck.ViewHTML, Kind: spancheck.DefectInvisibleText}:  1,
					},
					"Airport": {
						{View: spancheck.ViewHTML, Kind: spancheck.DefectMissingSourceFile}: 1,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Defects: defects}

		err := (&main.DefectsCmd{Summary: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"Run run-1: 3 defects\n"+
				"\nAirport\n"+
				"  HTML_FILE_NOT_FOUND                  1\n"+
				"\nCity\n"+
				"  HTML_INVISIBLE_TEXT                  1\n"+
				"  TEXT_OFFSET_MISMATCH                 1\n",
			stdout.String())
	})
}
