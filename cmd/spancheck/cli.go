package main

import (
	"context"
	"io"

	"github.com/fwojciec/spancheck"
)

// Report is a set of report files that is published as a whole.
type Report interface {
	spancheck.Reporter

	// Commit publishes the files written so far.
	Commit() error

	// Abort discards the files written so far.
	Abort() error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Defects  spancheck.DefectService
	Markup   spancheck.Markup
	PageInfo spancheck.PageInfoExtractor

	// Datasets opens the arranged dataset rooted at dir.
	Datasets func(dir string) spancheck.Dataset

	// Reports starts a report written to dir.
	Reports func(dir string) Report
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log dataset and database operations to stderr"`

	Annotations AnnotationsCmd `cmd:"" help:"Inspect annotations against the pages they were authored on"`
	Pages       PagesCmd       `cmd:"" help:"Inspect the markup rendition of every page"`
	Catalog     CatalogCmd     `cmd:"" help:"List the pages of every category with their annotation counts"`
	Runs        RunsCmd        `cmd:"" help:"List stored annotation inspection runs"`
	Defects     DefectsCmd     `cmd:"" help:"Show the defects of a stored run"`
}

// DatasetFlags are shared by the commands that read a dataset.
type DatasetFlags struct {
	DatasetDir  string   `arg:"" type:"existingdir" help:"Arranged dataset directory"`
	Category    []string `short:"C" name:"category" help:"Only process these categories (repeatable)"`
	Concurrency int      `short:"c" default:"10" help:"Pages processed at once"`
	Yes         bool     `short:"y" help:"Do not ask for confirmation"`
}

// AnnotationsCmd is the "annotations" subcommand.
type AnnotationsCmd struct {
	Dataset   DatasetFlags `embed:""`
	OutputDir string       `short:"o" default:"annotation_inspection" help:"Report directory"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Dataset   DatasetFlags `embed:""`
	OutputDir string       `short:"o" default:"page_inspection" help:"Report directory"`
}

// CatalogCmd is the "catalog" subcommand.
type CatalogCmd struct {
	Dataset   DatasetFlags `embed:""`
	OutputDir string       `short:"o" default:"catalog" help:"Report directory"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of runs to show"`
}

// DefectsCmd is the "defects" subcommand.
type DefectsCmd struct {
	RunID    string `arg:"" optional:"" help:"Run ID (default: latest run)"`
	Category string `short:"C" help:"Only show defects of this category"`
	Type     string `short:"t" help:"Only show defects of this type, e.g. TEXT_UNPAIRED_BRACES"`
	Page     *int   `short:"p" help:"Only show defects of this page"`
	Limit    int    `short:"n" help:"Maximum number of defects to show"`
	Summary  bool   `short:"s" help:"Show defect counts per category and type instead"`
}
