package main

import (
	"fmt"

	"github.com/fwojciec/spancheck"
	"github.com/fwojciec/spancheck/inspect"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	categories, err := c.Dataset.categories()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	ok, err := c.Dataset.confirm(deps, "Inspecting pages")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(deps.Stdout, "Aborted.")
		return nil
	}

	inspector := &inspect.Inspector{
		Dataset:     deps.Datasets(c.Dataset.DatasetDir),
		Markup:      deps.Markup,
		Concurrency: c.Dataset.Concurrency,
	}
	report := deps.Reports(c.OutputDir)

	total, err := c.inspect(deps, inspector, report, categories)
	if err != nil {
		_ = report.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}
	if err := report.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d page defects, report written to %s\n", total, c.OutputDir)
	return nil
}

func (c *PagesCmd) inspect(deps *Dependencies, inspector *inspect.Inspector, report Report, categories []string) (int, error) {
	progress := progressPrinter(deps.Stderr)

	var total int
	var counts []spancheck.CategoryPageDefectCounts
	for _, category := range categories {
		result, err := inspector.InspectPages(deps.Ctx, category, progress)
		if skipCategory(deps, category, err) {
			continue
		} else if err != nil {
			return 0, err
		}

		if err := report.WritePageDefects(deps.Ctx, category, result.Defects); err != nil {
			return 0, err
		}

		counts = append(counts, spancheck.CategoryPageDefectCounts{Category: category, Counts: result.Counts})
		total += len(result.Defects)
		fmt.Fprintf(deps.Stdout, "  %s: %d pages, %d defects\n", category, result.Pages, len(result.Defects))
	}

	if len(counts) == 0 {
		return 0, spancheck.Errorf(spancheck.ENOTFOUND, "no pages found in %q", c.Dataset.DatasetDir)
	}
	if err := report.WritePageDefectSummary(deps.Ctx, counts); err != nil {
		return 0, err
	}
	return total, nil
}
