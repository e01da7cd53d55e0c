// Package slog provides logging decorators for spancheck services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/spancheck"
)

// Ensure LoggingDataset implements spancheck.Dataset.
var _ spancheck.Dataset = (*LoggingDataset)(nil)

// LoggingDataset wraps a Dataset with logging. Category-level reads are
// logged at info level and per-page reads at debug level.
type LoggingDataset struct {
	next   spancheck.Dataset
	logger *slog.Logger
}

// NewLoggingDataset creates a new LoggingDataset.
func NewLoggingDataset(next spancheck.Dataset, logger *slog.Logger) *LoggingDataset {
	return &LoggingDataset{next: next, logger: logger}
}

// FindAnnotations delegates to the wrapped dataset and logs the operation.
func (d *LoggingDataset) FindAnnotations(ctx context.Context, category string) (annotations spancheck.PageAnnotations, err error) {
	defer func(begin time.Time) {
		var count int
		for _, page := range annotations {
			count += len(page)
		}
		d.logger.Info("read annotations",
			"category", category,
			"pages", len(annotations),
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.FindAnnotations(ctx, category)
}

// FindPageIDs delegates to the wrapped dataset and logs the operation.
func (d *LoggingDataset) FindPageIDs(ctx context.Context, category string) (ids []int, err error) {
	defer func(begin time.Time) {
		d.logger.Info("list pages",
			"category", category,
			"count", len(ids),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.FindPageIDs(ctx, category)
}

// ReadPage delegates to the wrapped dataset and logs the operation.
func (d *LoggingDataset) ReadPage(ctx context.Context, category string, pageID int, view spancheck.View) (raw string, err error) {
	defer func(begin time.Time) {
		d.logger.Debug("read page",
			"category", category,
			"page", pageID,
			"view", view.String(),
			"bytes", len(raw),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.ReadPage(ctx, category, pageID, view)
}

// PageSize delegates to the wrapped dataset and logs the operation.
func (d *LoggingDataset) PageSize(ctx context.Context, category string, pageID int, view spancheck.View) (size int64, err error) {
	defer func(begin time.Time) {
		d.logger.Debug("stat page",
			"category", category,
			"page", pageID,
			"view", view.String(),
			"size", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.PageSize(ctx, category, pageID, view)
}
