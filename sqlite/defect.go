package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/spancheck"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ spancheck.DefectService = (*DefectService)(nil)

// DefectService implements spancheck.DefectService using SQLite.
type DefectService struct {
	db *DB
}

// NewDefectService creates a new DefectService.
func NewDefectService(db *DB) *DefectService {
	return &DefectService{db: db}
}

// CreateRun creates a new run with a generated ID and creation time.
func (s *DefectService) CreateRun(ctx context.Context, run *spancheck.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()
	run.DefectCount = 0

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, dataset_dir, defect_count, created_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.DatasetDir, run.DefectCount, run.CreatedAt.Format(timeFormat))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *DefectService) FindRunByID(ctx context.Context, id string) (*spancheck.Run, error) {
	var run spancheck.Run
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, dataset_dir, defect_count, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.DatasetDir, &run.DefectCount, &createdAt)

	if err == sql.ErrNoRows {
		return nil, spancheck.Errorf(spancheck.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &run, nil
}

// FindRuns retrieves runs, newest first.
func (s *DefectService) FindRuns(ctx context.Context, filter spancheck.RunFilter) ([]*spancheck.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, dataset_dir, defect_count, created_at FROM runs ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*spancheck.Run
	for rows.Next() {
		var run spancheck.Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.DatasetDir, &run.DefectCount, &createdAt); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// DeleteRun removes a run. Its defects are removed by the foreign key cascade.
func (s *DefectService) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return spancheck.Errorf(spancheck.ENOTFOUND, "run not found")
	}
	return nil
}

// CreateDefects stores defects for a run in a single transaction and
// assigns their IDs.
func (s *DefectService) CreateDefects(ctx context.Context, runID string, defects []*spancheck.Defect) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "UPDATE runs SET defect_count = defect_count + ? WHERE id = ?", len(defects), runID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return spancheck.Errorf(spancheck.ENOTFOUND, "run not found")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO defects (run_id, category, view, kind, type, page_id, annotation_id, detail, content_hash, annotation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range defects {
		var annotation sql.NullString
		if d.Annotation != nil {
			data, err := json.Marshal(d.Annotation)
			if err != nil {
				return fmt.Errorf("failed to encode annotation: %w", err)
			}
			annotation = sql.NullString{String: string(data), Valid: true}
		}

		var annotationID sql.NullInt64
		if d.AnnotationID != nil {
			annotationID = sql.NullInt64{Int64: int64(*d.AnnotationID), Valid: true}
		}

		res, err := stmt.ExecContext(ctx, runID, d.Category, int(d.Type.View), int(d.Type.Kind), d.Type.String(),
			d.PageID, annotationID, d.Detail, d.ContentHash, annotation)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		d.ID = int(id)
		d.RunID = runID
	}

	return tx.Commit()
}

// FindDefects retrieves defects matching the filter in report order.
func (s *DefectService) FindDefects(ctx context.Context, filter spancheck.DefectFilter) ([]*spancheck.Defect, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, category, view, kind, page_id, annotation_id, detail, content_hash, annotation FROM defects WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	if filter.Type != nil {
		query.WriteString(" AND view = ? AND kind = ?")
		args = append(args, int(filter.Type.View), int(filter.Type.Kind))
	}
	if filter.PageID != nil {
		query.WriteString(" AND page_id = ?")
		args = append(args, *filter.PageID)
	}

	// NULL annotation IDs sort first, matching spancheck.CompareDefects.
	query.WriteString(" ORDER BY run_id, category, view, kind, page_id, annotation_id, detail, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defects []*spancheck.Defect
	for rows.Next() {
		var d spancheck.Defect
		var view, kind int
		var annotationID sql.NullInt64
		var annotation sql.NullString

		if err := rows.Scan(&d.ID, &d.RunID, &d.Category, &view, &kind, &d.PageID,
			&annotationID, &d.Detail, &d.ContentHash, &annotation); err != nil {
			return nil, err
		}
		d.Type = spancheck.DefectType{View: spancheck.View(view), Kind: spancheck.DefectKind(kind)}

		if annotationID.Valid {
			id := int(annotationID.Int64)
			d.AnnotationID = &id
		}
		if annotation.Valid {
			var a spancheck.Annotation
			if err := json.Unmarshal([]byte(annotation.String), &a); err != nil {
				return nil, fmt.Errorf("failed to decode annotation: %w", err)
			}
			if d.AnnotationID != nil {
				a.ID = *d.AnnotationID
			}
			d.Annotation = &a
		}

		defects = append(defects, &d)
	}

	return defects, rows.Err()
}

// CountDefects tallies a run's defects by category and type.
func (s *DefectService) CountDefects(ctx context.Context, runID string) (map[string]spancheck.DefectCounts, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, view, kind, COUNT(*)
		FROM defects
		WHERE run_id = ?
		GROUP BY category, view, kind
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]spancheck.DefectCounts)
	for rows.Next() {
		var category string
		var view, kind, n int
		if err := rows.Scan(&category, &view, &kind, &n); err != nil {
			return nil, err
		}
		if counts[category] == nil {
			counts[category] = make(spancheck.DefectCounts)
		}
		counts[category][spancheck.DefectType{View: spancheck.View(view), Kind: spancheck.DefectKind(kind)}] = n
	}

	return counts, rows.Err()
}
