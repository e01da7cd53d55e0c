package mock

import (
	"context"

	"github.com/fwojciec/spancheck"
)

var _ spancheck.Dataset = (*Dataset)(nil)

// Dataset is a mock implementation of spancheck.Dataset.
type Dataset struct {
	FindAnnotationsFn func(ctx context.Context, category string) (spancheck.PageAnnotations, error)
	FindPageIDsFn     func(ctx context.Context, category string) ([]int, error)
	ReadPageFn        func(ctx context.Context, category string, pageID int, view spancheck.View) (string, error)
	PageSizeFn        func(ctx context.Context, category string, pageID int, view spancheck.View) (int64, error)
}

func (d *Dataset) FindAnnotations(ctx context.Context, category string) (spancheck.PageAnnotations, error) {
	return d.FindAnnotationsFn(ctx, category)
}

func (d *Dataset) FindPageIDs(ctx context.Context, category string) ([]int, error) {
	return d.FindPageIDsFn(ctx, category)
}

func (d *Dataset) ReadPage(ctx context.Context, category string, pageID int, view spancheck.View) (string, error) {
	return d.ReadPageFn(ctx, category, pageID, view)
}

func (d *Dataset) PageSize(ctx context.Context, category string, pageID int, view spancheck.View) (int64, error) {
	return d.PageSizeFn(ctx, category, pageID, view)
}
