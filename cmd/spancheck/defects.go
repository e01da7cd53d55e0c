package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/spancheck"
)

// Run executes the defects command.
func (c *DefectsCmd) Run(deps *Dependencies) error {
	run, err := c.findRun(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	if c.Summary {
		return c.printSummary(deps, run)
	}

	filter := spancheck.DefectFilter{RunID: &run.ID, PageID: c.Page, Limit: c.Limit}
	if c.Category != "" {
		filter.Category = &c.Category
	}
	if c.Type != "" {
		typ, err := spancheck.ParseDefectType(c.Type)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
			return err
		}
		filter.Type = &typ
	}

	defects, err := deps.Defects.FindDefects(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	if len(defects) == 0 {
		fmt.Fprintf(deps.Stdout, "No defects found in run %s.\n", run.ID)
		return nil
	}

	for _, d := range defects {
		annotationID := spancheck.FormatAnnotationID(d.AnnotationID)
		if annotationID == "" {
			annotationID = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d  %s  %s\n", d.Category, d.Type, d.PageID, annotationID, d.Detail)
	}

	return nil
}

// findRun returns the requested run, or the latest one.
func (c *DefectsCmd) findRun(deps *Dependencies) (*spancheck.Run, error) {
	if c.RunID != "" {
		return deps.Defects.FindRunByID(deps.Ctx, c.RunID)
	}

	runs, err := deps.Defects.FindRuns(deps.Ctx, spancheck.RunFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, spancheck.Errorf(spancheck.ENOTFOUND, "no runs found. Use 'spancheck annotations' to create one")
	}
	return runs[0], nil
}

func (c *DefectsCmd) printSummary(deps *Dependencies, run *spancheck.Run) error {
	counts, err := deps.Defects.CountDefects(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s: %d defects\n", run.ID, run.DefectCount)

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	slices.Sort(categories)

	for _, category := range categories {
		if c.Category != "" && category != c.Category {
			continue
		}
		fmt.Fprintf(deps.Stdout, "\n%s\n", category)
		for _, typ := range spancheck.DefectTypes {
			if n := counts[category][typ]; n > 0 {
				fmt.Fprintf(deps.Stdout, "  %-36s %d\n", typ, n)
			}
		}
	}

	return nil
}
