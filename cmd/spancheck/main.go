package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/spancheck"
	"github.com/fwojciec/spancheck/csv"
	"github.com/fwojciec/spancheck/fs"
	"github.com/fwojciec/spancheck/goquery"
	"github.com/fwojciec/spancheck/html"
	spanslog "github.com/fwojciec/spancheck/slog"
	"github.com/fwojciec/spancheck/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Source of confirmation answers. Set before calling Run().
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DefectService spancheck.DefectService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("spancheck"),
		kong.Description("Check span annotations against the pages they were authored on"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'spancheck --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SPANCHECK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DefectService = spanslog.NewLoggingDefectService(sqlite.NewDefectService(m.DB), logger)
	deps.Defects = m.DefectService
	deps.Markup = html.NewMarkup()
	deps.PageInfo = goquery.NewPageInfoExtractor()
	deps.Datasets = func(dir string) spancheck.Dataset {
		return spanslog.NewLoggingDataset(fs.NewDataset(dir), logger)
	}
	deps.Reports = newCSVReport

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// csvReport writes CSV files into a report directory that replaces the
// previous one on Commit.
type csvReport struct {
	*csv.Reporter
	dir *fs.ReportDir
}

func newCSVReport(dir string) Report {
	reportDir := fs.NewReportDir(filepath.Dir(dir), filepath.Base(dir))
	return &csvReport{Reporter: csv.NewReporter(reportDir), dir: reportDir}
}

func (r *csvReport) Commit() error { return r.dir.Commit() }

func (r *csvReport) Abort() error { return r.dir.Abort() }

func defaultDBPath() string {
	if path := os.Getenv("SPANCHECK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "spancheck.db"
	}
	dir := filepath.Join(home, ".spancheck")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "spancheck.db")
}
