package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/spancheck"
	"github.com/fwojciec/spancheck/inspect"
	"golang.org/x/time/rate"
)

// categories returns the requested categories, or every known category
// when none were requested.
func (f *DatasetFlags) categories() ([]string, error) {
	if len(f.Category) == 0 {
		return spancheck.AllCategories(), nil
	}
	for _, c := range f.Category {
		if !spancheck.IsCategory(c) {
			return nil, spancheck.Errorf(spancheck.EINVALID, "unknown category %q", c)
		}
	}
	return f.Category, nil
}

// confirm asks whether to go ahead with action unless --yes was given.
// Anything but "y" or "yes" declines.
func (f *DatasetFlags) confirm(deps *Dependencies, action string) (bool, error) {
	if f.Yes {
		return true, nil
	}

	fmt.Fprintf(deps.Stdout, "%s in %q.\nContinue? [y/N] ", action, f.DatasetDir)
	line, err := bufio.NewReader(deps.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// skipCategory reports whether err means the category is absent from the
// dataset, and says so on stderr.
func skipCategory(deps *Dependencies, category string, err error) bool {
	if spancheck.ErrorCode(err) != spancheck.ENOTFOUND {
		return false
	}
	fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", category, spancheck.ErrorMessage(err))
	return true
}

// progressPrinter prints at most one progress line per second.
func progressPrinter(w io.Writer) inspect.ProgressFunc {
	sometimes := &rate.Sometimes{First: 1, Interval: time.Second}
	return func(event inspect.ProgressEvent) {
		sometimes.Do(func() {
			fmt.Fprintf(w, "  %s: %d/%d pages, %d defects\n",
				event.Category, event.Completed, event.Total, event.Defects)
		})
	}
}
