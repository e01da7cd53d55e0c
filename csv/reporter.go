// Package csv writes inspection and catalog reports as CSV files.
package csv

import (
	"cmp"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/fwojciec/spancheck"
)

// Ensure Reporter implements spancheck.Reporter at compile time.
var _ spancheck.Reporter = (*Reporter)(nil)

// FileCreator creates report files by name.
type FileCreator interface {
	Create(name string) (io.WriteCloser, error)
}

// Report file names.
const (
	annotationSuffix = "_annotation_inspection.csv"
	pageSuffix       = "_page_inspection.csv"
	catalogSuffix    = "_catalog.csv"
	summaryPrefix    = "summary"
)

// Reporter writes one CSV file per category plus a summary file. Lines
// end with '\n'.
type Reporter struct {
	files FileCreator
}

// NewReporter creates a new Reporter writing to files.
func NewReporter(files FileCreator) *Reporter {
	return &Reporter{files: files}
}

// WriteDefects writes <category>_annotation_inspection.csv.
func (r *Reporter) WriteDefects(ctx context.Context, category string, defects []*spancheck.Defect) error {
	return r.write(category+annotationSuffix, func(w *csv.Writer) error {
		if err := w.Write([]string{"category", "error_type", "page_id", "annotation_id", "error_detail", "annotation"}); err != nil {
			return err
		}
		for _, d := range defects {
			annotation, err := formatAnnotation(d.Annotation)
			if err != nil {
				return err
			}
			if err := w.Write([]string{
				d.Category,
				d.Type.String(),
				strconv.Itoa(d.PageID),
				spancheck.FormatAnnotationID(d.AnnotationID),
				d.Detail,
				annotation,
			}); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
}

func formatAnnotation(a *spancheck.Annotation) (string, error) {
	if a == nil {
		return "", nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to encode annotation: %w", err)
	}
	return string(data), nil
}

// WriteDefectSummary writes summary_annotation_inspection.csv with one
// column per defect type.
func (r *Reporter) WriteDefectSummary(ctx context.Context, counts []spancheck.CategoryDefectCounts) error {
	return r.write(summaryPrefix+annotationSuffix, func(w *csv.Writer) error {
		header := []string{"category"}
		for _, typ := range spancheck.DefectTypes {
			header = append(header, typ.String())
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, c := range counts {
			row := []string{c.Category}
			for _, typ := range spancheck.DefectTypes {
				row = append(row, strconv.Itoa(c.Counts[typ]))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
}

// WritePageDefects writes <category>_page_inspection.csv.
func (r *Reporter) WritePageDefects(ctx context.Context, category string, defects []*spancheck.PageDefect) error {
	return r.write(category+pageSuffix, func(w *csv.Writer) error {
		if err := w.Write([]string{"page_id", "error_type", "error_detail"}); err != nil {
			return err
		}
		for _, d := range defects {
			if err := w.Write([]string{strconv.Itoa(d.PageID), d.Kind.String(), d.Detail}); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
}

// WritePageDefectSummary writes summary_page_inspection.csv.
func (r *Reporter) WritePageDefectSummary(ctx context.Context, counts []spancheck.CategoryPageDefectCounts) error {
	return r.write(summaryPrefix+pageSuffix, func(w *csv.Writer) error {
		header := []string{"category"}
		for _, kind := range spancheck.PageDefectKinds {
			header = append(header, kind.String())
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, c := range counts {
			row := []string{c.Category}
			for _, kind := range spancheck.PageDefectKinds {
				row = append(row, strconv.Itoa(c.Counts[kind]))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
}

// WriteCatalog writes <category>_catalog.csv with one column per
// annotated attribute. Annotation columns are empty for pages that have
// no annotations.
func (r *Reporter) WriteCatalog(ctx context.Context, catalog *spancheck.Catalog) error {
	return r.write(catalog.Category+catalogSuffix, func(w *csv.Writer) error {
		header := []string{
			"page_id", "title", "html_file_size", "text_file_size",
			"is_disambiguation_page", "infobox_count", "num_annotations",
		}
		header = append(header, catalog.Attributes...)
		if err := w.Write(header); err != nil {
			return err
		}

		entries := slices.Clone(catalog.Entries)
		slices.SortFunc(entries, func(a, b *spancheck.CatalogEntry) int { return cmp.Compare(a.PageID, b.PageID) })
		for _, e := range entries {
			row := []string{
				strconv.Itoa(e.PageID),
				e.Title,
				strconv.FormatInt(e.HTMLFileSize, 10),
				strconv.FormatInt(e.TextFileSize, 10),
				strconv.FormatBool(e.IsDisambiguationPage),
				strconv.Itoa(e.InfoboxCount),
			}
			if e.AnnotationCount != nil {
				row = append(row, strconv.Itoa(*e.AnnotationCount))
				for _, attr := range catalog.Attributes {
					row = append(row, strconv.Itoa(e.AnnotationCountByAttribute[attr]))
				}
			} else {
				row = append(row, "")
				for range catalog.Attributes {
					row = append(row, "")
				}
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
}

// WriteCatalogSummary writes summary_catalog.csv. Each category occupies
// two columns, field names and values, so categories with different
// attributes line up side by side.
func (r *Reporter) WriteCatalogSummary(ctx context.Context, catalogs []*spancheck.Catalog) error {
	var columns [][]string
	for _, c := range catalogs {
		s := c.Summary()
		names := []string{
			"category", "num_pages", "total_html_file_size", "total_text_file_size",
			"num_disambiguation_pages", "total_infobox_count", "num_pages_with_annotation",
			"num_pages_with_infobox", "num_attribute_types", "total_num_annotations",
			"num_annotations_by_attribute",
		}
		values := []string{
			c.Category,
			strconv.Itoa(s.NumPages),
			strconv.FormatInt(s.TotalHTMLFileSize, 10),
			strconv.FormatInt(s.TotalTextFileSize, 10),
			strconv.Itoa(s.NumDisambiguationPages),
			strconv.Itoa(s.TotalInfoboxCount),
			strconv.Itoa(s.NumPagesWithAnnotation),
			strconv.Itoa(s.NumPagesWithInfobox),
			strconv.Itoa(s.NumAttributeTypes),
			strconv.Itoa(s.TotalNumAnnotations),
			"",
		}
		attrs := make([]string, 0, len(s.NumAnnotationsByAttribute))
		for attr := range s.NumAnnotationsByAttribute {
			attrs = append(attrs, attr)
		}
		slices.Sort(attrs)
		for _, attr := range attrs {
			names = append(names, attr)
			values = append(values, strconv.Itoa(s.NumAnnotationsByAttribute[attr]))
		}
		columns = append(columns, names, values)
	}

	return r.write(summaryPrefix+catalogSuffix, func(w *csv.Writer) error {
		for _, row := range transpose(columns) {
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return ctx.Err()
	})
}

// transpose turns columns into rows, padding short columns with empty
// cells.
func transpose(columns [][]string) [][]string {
	var height int
	for _, c := range columns {
		height = max(height, len(c))
	}
	rows := make([][]string, height)
	for i := range rows {
		rows[i] = make([]string, len(columns))
		for j, c := range columns {
			if i < len(c) {
				rows[i][j] = c[i]
			}
		}
	}
	return rows
}

func (r *Reporter) write(name string, fn func(w *csv.Writer) error) (err error) {
	f, err := r.files.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	w.UseCRLF = false
	if err := fn(w); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	w.Flush()
	return w.Error()
}
