package main

import (
	"fmt"

	"github.com/fwojciec/spancheck"
	"github.com/fwojciec/spancheck/inspect"
)

// Run executes the catalog command.
func (c *CatalogCmd) Run(deps *Dependencies) error {
	categories, err := c.Dataset.categories()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	ok, err := c.Dataset.confirm(deps, "Making dataset catalogs")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(deps.Stdout, "Aborted.")
		return nil
	}

	cataloger := &inspect.Cataloger{
		Dataset:     deps.Datasets(c.Dataset.DatasetDir),
		Extractor:   deps.PageInfo,
		Concurrency: c.Dataset.Concurrency,
	}
	report := deps.Reports(c.OutputDir)

	if err := c.catalog(deps, cataloger, report, categories); err != nil {
		_ = report.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}
	if err := report.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spancheck.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Catalog written to %s\n", c.OutputDir)
	return nil
}

func (c *CatalogCmd) catalog(deps *Dependencies, cataloger *inspect.Cataloger, report Report, categories []string) error {
	progress := progressPrinter(deps.Stderr)

	var catalogs []*spancheck.Catalog
	for _, category := range categories {
		catalog, err := cataloger.CatalogCategory(deps.Ctx, category, progress)
		if skipCategory(deps, category, err) {
			continue
		} else if err != nil {
			return err
		}

		if err := report.WriteCatalog(deps.Ctx, catalog); err != nil {
			return err
		}

		catalogs = append(catalogs, catalog)
		summary := catalog.Summary()
		fmt.Fprintf(deps.Stdout, "  %s: %d pages (%s markup, %s text), %d attributes\n", category, summary.NumPages,
			formatBytes(summary.TotalHTMLFileSize), formatBytes(summary.TotalTextFileSize), summary.NumAttributeTypes)
	}

	if len(catalogs) == 0 {
		return spancheck.Errorf(spancheck.ENOTFOUND, "no annotation files found in %q", c.Dataset.DatasetDir)
	}
	return report.WriteCatalogSummary(deps.Ctx, catalogs)
}
