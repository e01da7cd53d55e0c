package mock

import (
	"context"

	"github.com/fwojciec/spancheck"
)

var _ spancheck.Reporter = (*Reporter)(nil)

// Reporter is a mock implementation of spancheck.Reporter.
type Reporter struct {
	WriteDefectsFn           func(ctx context.Context, category string, defects []*spancheck.Defect) error
	WriteDefectSummaryFn     func(ctx context.Context, counts []spancheck.CategoryDefectCounts) error
	WritePageDefectsFn       func(ctx context.Context, category string, defects []*spancheck.PageDefect) error
	WritePageDefectSummaryFn func(ctx context.Context, counts []spancheck.CategoryPageDefectCounts) error
	WriteCatalogFn           func(ctx context.Context, catalog *spancheck.Catalog) error
	WriteCatalogSummaryFn    func(ctx context.Context, catalogs []*spancheck.Catalog) error
}

func (r *Reporter) WriteDefects(ctx context.Context, category string, defects []*spancheck.Defect) error {
	return r.WriteDefectsFn(ctx, category, defects)
}

func (r *Reporter) WriteDefectSummary(ctx context.Context, counts []spancheck.CategoryDefectCounts) error {
	return r.WriteDefectSummaryFn(ctx, counts)
}

func (r *Reporter) WritePageDefects(ctx context.Context, category string, defects []*spancheck.PageDefect) error {
	return r.WritePageDefectsFn(ctx, category, defects)
}

func (r *Reporter) WritePageDefectSummary(ctx context.Context, counts []spancheck.CategoryPageDefectCounts) error {
	return r.WritePageDefectSummaryFn(ctx, counts)
}

func (r *Reporter) WriteCatalog(ctx context.Context, catalog *spancheck.Catalog) error {
	return r.WriteCatalogFn(ctx, catalog)
}

func (r *Reporter) WriteCatalogSummary(ctx context.Context, catalogs []*spancheck.Catalog) error {
	return r.WriteCatalogSummaryFn(ctx, catalogs)
}
