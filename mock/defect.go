package mock

import (
	"context"

	"github.com/fwojciec/spancheck"
)

var _ spancheck.DefectService = (*DefectService)(nil)

// DefectService is a mock implementation of spancheck.DefectService.
type DefectService struct {
	CreateRunFn     func(ctx context.Context, run *spancheck.Run) error
	FindRunByIDFn   func(ctx context.Context, id string) (*spancheck.Run, error)
	FindRunsFn      func(ctx context.Context, filter spancheck.RunFilter) ([]*spancheck.Run, error)
	DeleteRunFn     func(ctx context.Context, id string) error
	CreateDefectsFn func(ctx context.Context, runID string, defects []*spancheck.Defect) error
	FindDefectsFn   func(ctx context.Context, filter spancheck.DefectFilter) ([]*spancheck.Defect, error)
	CountDefectsFn  func(ctx context.Context, runID string) (map[string]spancheck.DefectCounts, error)
}

func (s *DefectService) CreateRun(ctx context.Context, run *spancheck.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *DefectService) FindRunByID(ctx context.Context, id string) (*spancheck.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *DefectService) FindRuns(ctx context.Context, filter spancheck.RunFilter) ([]*spancheck.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *DefectService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}

func (s *DefectService) CreateDefects(ctx context.Context, runID string, defects []*spancheck.Defect) error {
	return s.CreateDefectsFn(ctx, runID, defects)
}

func (s *DefectService) FindDefects(ctx context.Context, filter spancheck.DefectFilter) ([]*spancheck.Defect, error) {
	return s.FindDefectsFn(ctx, filter)
}

func (s *DefectService) CountDefects(ctx context.Context, runID string) (map[string]spancheck.DefectCounts, error) {
	return s.CountDefectsFn(ctx, runID)
}
