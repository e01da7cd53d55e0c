package spancheck

import (
	"cmp"
	"context"
	"time"
)

// View identifies which rendition of a page a check ran against.
type View int

// Views in report order.
const (
	ViewHTML View = iota
	ViewText
)

// Views lists every view in declaration order.
var Views = []View{ViewHTML, ViewText}

func (v View) String() string {
	switch v {
	case ViewHTML:
		return "HTML"
	case ViewText:
		return "TEXT"
	}
	return "UNKNOWN"
}

// DefectKind classifies a disagreement between an annotation and its page.
// Declaration order is report order and must not change.
type DefectKind int

const (
	// DefectMissingSourceFile means the page rendition does not exist.
	DefectMissingSourceFile DefectKind = iota

	// DefectOffsetMismatch means the text at the given offsets is not the
	// annotated text.
	DefectOffsetMismatch

	// DefectLeadingOrTrailingSpace means the annotated text starts or ends
	// with whitespace.
	DefectLeadingOrTrailingSpace

	// DefectBlockTagPresent means the annotated markup contains a block
	// tag such as h1 or td. Markup view only.
	DefectBlockTagPresent

	// DefectInvisibleText means the annotated markup renders no text, e.g.
	// it lies inside a comment or a script. Markup view only.
	DefectInvisibleText

	// DefectUnpairedDelimiters means brackets or quotation brackets in the
	// annotated text are not properly nested.
	DefectUnpairedDelimiters

	// DefectOverlappingAnnotations means two annotations of the same
	// attribute overlap.
	DefectOverlappingAnnotations
)

var defectKindNames = [...]string{
	DefectMissingSourceFile:      "FILE_NOT_FOUND",
	DefectOffsetMismatch:         "OFFSET_MISMATCH",
	DefectLeadingOrTrailingSpace: "LEADING_OR_TRAILING_SPACE",
	DefectBlockTagPresent:        "WITH_BLOCK_TAG",
	DefectInvisibleText:          "INVISIBLE_TEXT",
	DefectUnpairedDelimiters:     "UNPAIRED_BRACES",
	DefectOverlappingAnnotations: "OVERLAPPED_ANNOTATIONS",
}

func (k DefectKind) String() string {
	if k < 0 || int(k) >= len(defectKindNames) {
		return "UNKNOWN"
	}
	return defectKindNames[k]
}

// AppliesTo reports whether checks of this kind run against the view.
func (k DefectKind) AppliesTo(v View) bool {
	switch k {
	case DefectBlockTagPresent, DefectInvisibleText:
		return v == ViewHTML
	}
	return true
}

// DefectType is a defect kind qualified by the view it was found in.
type DefectType struct {
	View View
	Kind DefectKind
}

// String returns the report name, e.g. "HTML_OFFSET_MISMATCH".
func (t DefectType) String() string {
	return t.View.String() + "_" + t.Kind.String()
}

// Compare orders defect types by view, then kind.
func (t DefectType) Compare(other DefectType) int {
	if c := cmp.Compare(t.View, other.View); c != 0 {
		return c
	}
	return cmp.Compare(t.Kind, other.Kind)
}

// DefectTypes lists every valid defect type in report order.
var DefectTypes = func() []DefectType {
	var types []DefectType
	for _, v := range Views {
		for k := range DefectKind(len(defectKindNames)) {
			if k.AppliesTo(v) {
				types = append(types, DefectType{View: v, Kind: k})
			}
		}
	}
	return types
}()

// ParseDefectType parses a report name such as "TEXT_UNPAIRED_BRACES".
// Returns EINVALID for unknown names.
func ParseDefectType(s string) (DefectType, error) {
	for _, t := range DefectTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return DefectType{}, Errorf(EINVALID, "unknown defect type %q", s)
}

// Defect is a data-quality finding about an annotation or a page rendition.
type Defect struct {
	ID       int        `json:"id"`
	RunID    string     `json:"runId"`
	Category string     `json:"category"`
	Type     DefectType `json:"-"`
	PageID   int        `json:"pageId"`

	// AnnotationID is nil for defects about a whole rendition.
	AnnotationID *int   `json:"annotationId"`
	Detail       string `json:"detail"`

	// ContentHash fingerprints the rendition the defect was found in.
	ContentHash string `json:"contentHash"`

	Annotation *Annotation `json:"annotation,omitempty"`
}

// CompareDefects orders defects by category, type, page, annotation and
// detail.
// Defects without an annotation sort first within a page.
func CompareDefects(a, b *Defect) int {
	if c := cmp.Compare(a.Category, b.Category); c != 0 {
		return c
	}
	if c := a.Type.Compare(b.Type); c != 0 {
		return c
	}
	if c := cmp.Compare(a.PageID, b.PageID); c != 0 {
		return c
	}
	switch {
	case a.AnnotationID == nil && b.AnnotationID != nil:
		return -1
	case a.AnnotationID != nil && b.AnnotationID == nil:
		return 1
	case a.AnnotationID != nil && b.AnnotationID != nil:
		if c := cmp.Compare(*a.AnnotationID, *b.AnnotationID); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Detail, b.Detail)
}

// DefectCounts tallies defects by type.
type DefectCounts map[DefectType]int

// Add counts every defect in defects.
func (c DefectCounts) Add(defects []*Defect) {
	for _, d := range defects {
		c[d.Type]++
	}
}

// Run is one inspection of a dataset.
type Run struct {
	ID          string    `json:"id"`
	DatasetDir  string    `json:"datasetDir"`
	CreatedAt   time.Time `json:"createdAt"`
	DefectCount int       `json:"defectCount"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.DatasetDir == "" {
		return Errorf(EINVALID, "run dataset directory required")
	}
	return nil
}

// DefectService persists inspection runs and their defects.
type DefectService interface {
	// CreateRun creates a new run and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun removes a run together with its defects.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error

	// CreateDefects stores defects for a run.
	// Returns ENOTFOUND if the run does not exist.
	CreateDefects(ctx context.Context, runID string, defects []*Defect) error

	// FindDefects retrieves defects matching the filter in report order.
	FindDefects(ctx context.Context, filter DefectFilter) ([]*Defect, error)

	// CountDefects tallies a run's defects by category and type.
	CountDefects(ctx context.Context, runID string) (map[string]DefectCounts, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DefectFilter represents a filter for FindDefects.
type DefectFilter struct {
	RunID    *string     `json:"runId"`
	Category *string     `json:"category"`
	Type     *DefectType `json:"type"`
	PageID   *int        `json:"pageId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
