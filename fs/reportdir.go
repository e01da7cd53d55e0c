package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/spancheck"
)

// ReportDir writes report files with atomic update semantics.
// Files are created in a temporary directory that replaces the report
// directory on Commit, so a failed run never leaves a half-written report.
type ReportDir struct {
	baseDir string
	name    string
}

// NewReportDir creates a new ReportDir.
// baseDir is the parent directory, name is the report directory name.
// Files are created in baseDir/name.tmp and moved to baseDir/name on Commit.
func NewReportDir(baseDir, name string) *ReportDir {
	return &ReportDir{
		baseDir: baseDir,
		name:    name,
	}
}

// Path returns the final location of the report directory.
func (d *ReportDir) Path() string {
	return d.finalDir()
}

func (d *ReportDir) tempDir() string {
	return filepath.Join(d.baseDir, d.name+".tmp")
}

func (d *ReportDir) finalDir() string {
	return filepath.Join(d.baseDir, d.name)
}

// Create creates or truncates the named file in the temporary directory.
// name must be a plain file name.
func (d *ReportDir) Create(name string) (io.WriteCloser, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, spancheck.Errorf(spancheck.EINVALID, "invalid report file name %q: path traversal", name)
	}
	if err := os.MkdirAll(d.tempDir(), 0755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(d.tempDir(), name))
}

// Commit replaces the report directory with the files created so far.
func (d *ReportDir) Commit() error {
	if err := os.MkdirAll(d.tempDir(), 0755); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(d.finalDir()); err != nil {
		return err
	}

	return os.Rename(d.tempDir(), d.finalDir())
}

// Abort discards the files created so far.
func (d *ReportDir) Abort() error {
	return os.RemoveAll(d.tempDir())
}
