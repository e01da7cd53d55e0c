package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/spancheck"
	"github.com/fwojciec/spancheck/inspect"
)

// Run executes the annotations command.
func (c *AnnotationsCmd) Run(deps *Dependencies) error {
	categories, err := c.Dataset.categories()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	ok, err := c.Dataset.confirm(deps, "Inspecting annotations")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(deps.Stdout, "Aborted.")
		return nil
	}

	datasetDir, err := filepath.Abs(c.Dataset.DatasetDir)
	if err != nil {
		return err
	}
	run := &spancheck.Run{DatasetDir: datasetDir}
	if err := deps.Defects.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	inspector := &inspect.Inspector{
		Dataset:     deps.Datasets(c.Dataset.DatasetDir),
		Markup:      deps.Markup,
		Concurrency: c.Dataset.Concurrency,
	}
	report := deps.Reports(c.OutputDir)

	total, err := c.inspect(deps, inspector, run, report, categories)
	if err != nil {
		_ = report.Abort()
		c.deleteRun(deps, run)
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}
	if err := report.Commit(); err != nil {
		c.deleteRun(deps, run)
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d defects (run %s), report written to %s\n", total, run.ID, c.OutputDir)
	return nil
}

// deleteRun removes a run whose report was not committed, even after the
// command context is cancelled.
func (c *AnnotationsCmd) deleteRun(deps *Dependencies, run *spancheck.Run) {
	if err := deps.Defects.DeleteRun(context.WithoutCancel(deps.Ctx), run.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: delete run %s: %s\n", run.ID, spancheck.ErrorMessage(err))
	}
}

func (c *AnnotationsCmd) inspect(deps *Dependencies, inspector *inspect.Inspector, run *spancheck.Run, report Report, categories []string) (int, error) {
	progress := progressPrinter(deps.Stderr)

	var total int
	var counts []spancheck.CategoryDefectCounts
	for _, category := range categories {
		result, err := inspector.InspectCategory(deps.Ctx, category, progress)
		if skipCategory(deps, category, err) {
			continue
		} else if err != nil {
			return 0, err
		}

		if err := deps.Defects.CreateDefects(deps.Ctx, run.ID, result.Defects); err != nil {
			return 0, err
		}
		if err := report.WriteDefects(deps.Ctx, category, result.Defects); err != nil {
			return 0, err
		}

		counts = append(counts, spancheck.CategoryDefectCounts{Category: category, Counts: result.Counts})
		total += len(result.Defects)
		fmt.Fprintf(deps.Stdout, "  %s: %d pages, %d defects\n", category, result.Pages, len(result.Defects))
	}

	if len(counts) == 0 {
		return 0, spancheck.Errorf(spancheck.ENOTFOUND, "no annotation files found in %q", c.Dataset.DatasetDir)
	}
	if err := report.WriteDefectSummary(deps.Ctx, counts); err != nil {
		return 0, err
	}
	return total, nil
}
