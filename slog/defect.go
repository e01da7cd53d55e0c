package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/spancheck"
)

// Ensure LoggingDefectService implements spancheck.DefectService.
var _ spancheck.DefectService = (*LoggingDefectService)(nil)

// LoggingDefectService wraps a DefectService with logging.
type LoggingDefectService struct {
	next   spancheck.DefectService
	logger *slog.Logger
}

// NewLoggingDefectService creates a new LoggingDefectService.
func NewLoggingDefectService(next spancheck.DefectService, logger *slog.Logger) *LoggingDefectService {
	return &LoggingDefectService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the operation.
func (s *LoggingDefectService) CreateRun(ctx context.Context, run *spancheck.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create run",
			"id", run.ID,
			"dataset", run.DatasetDir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

// FindRunByID delegates to the wrapped service and logs the operation.
func (s *LoggingDefectService) FindRunByID(ctx context.Context, id string) (run *spancheck.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRunByID(ctx, id)
}

// FindRuns delegates to the wrapped service and logs the operation.
func (s *LoggingDefectService) FindRuns(ctx context.Context, filter spancheck.RunFilter) (runs []*spancheck.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find runs",
			"count", len(runs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRuns(ctx, filter)
}

// DeleteRun delegates to the wrapped service and logs the operation.
func (s *LoggingDefectService) DeleteRun(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRun(ctx, id)
}

// CreateDefects delegates to the wrapped service and logs the operation.
func (s *LoggingDefectService) CreateDefects(ctx context.Context, runID string, defects []*spancheck.Defect) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("store defects",
			"run", runID,
			"count", len(defects),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDefects(ctx, runID, defects)
}

// FindDefects delegates to the wrapped service and logs the operation.
func (s *LoggingDefectService) FindDefects(ctx context.Context, filter spancheck.DefectFilter) (defects []*spancheck.Defect, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find defects",
			"count", len(defects),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDefects(ctx, filter)
}

// CountDefects delegates to the wrapped service and logs the operation.
func (s *LoggingDefectService) CountDefects(ctx context.Context, runID string) (counts map[string]spancheck.DefectCounts, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("count defects",
			"run", runID,
			"categories", len(counts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CountDefects(ctx, runID)
}
