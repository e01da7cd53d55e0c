package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/spancheck"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Defects.FindRuns(deps.Ctx, spancheck.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'spancheck annotations' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d defects  %s\n",
			r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.DefectCount, r.DatasetDir)
	}

	return nil
}
