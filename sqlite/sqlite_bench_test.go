package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/spancheck"
	"github.com/fwojciec/spancheck/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkCreateDefects compares storing a category's defects in WAL and
// rollback journal modes.
func BenchmarkCreateDefects(b *testing.B) {
	const defectsPerCategory = 1000

	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkCreateDefects(b, false, defectsPerCategory)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkCreateDefects(b, true, defectsPerCategory)
	})
}

func benchmarkCreateDefects(b *testing.B, useWAL bool, n int) {
	b.Helper()

	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	if !useWAL {
		_, err := db.ExecContext(ctx, "PRAGMA journal_mode = DELETE")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	svc := sqlite.NewDefectService(db)
	run := &spancheck.Run{DatasetDir: "/data/bench"}
	require.NoError(b, svc.CreateRun(ctx, run))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		defects := make([]*spancheck.Defect, n)
		for j := range defects {
			id := j
			defects[j] = &spancheck.Defect{
				Category:     "City",
				Type:         spancheck.DefectType{View: spancheck.ViewText, Kind: spancheck.DefectOffsetMismatch},
				PageID:       j / 10,
				AnnotationID: &id,
				Detail:       fmt.Sprintf(`"value %d" != "valeu %d"`, j, j),
				ContentHash:  "0123456789abcdef",
			}
		}
		if err := svc.CreateDefects(ctx, run.ID, defects); err != nil {
			b.Fatal(err)
		}
	}
}
