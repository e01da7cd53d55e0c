package inspect

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fwojciec/spancheck"
	"golang.org/x/text/unicode/norm"
)

// finding is the outcome of the span checks for one annotation.
type finding struct {
	kind   spancheck.DefectKind
	detail string
}

// InspectMarkup checks the markup offsets of annotations against the markup
// rendition of their page and reports overlapping annotations of the same
// attribute. The returned defects carry the annotation's page ID but no
// category.
func (i *Inspector) InspectMarkup(content *spancheck.Content, annotations []*spancheck.Annotation) ([]*spancheck.Defect, error) {
	clean, err := i.Markup.Clean(content)
	if err != nil {
		return nil, fmt.Errorf("clean markup: %w", err)
	}

	var defects []*spancheck.Defect
	for _, a := range annotations {
		off := a.HTMLOffset
		if off == nil || off.Text == nil {
			continue
		}
		if f := i.checkMarkupSpan(content, clean, off); f != nil {
			defects = append(defects, newDefect(spancheck.ViewHTML, a, f))
		}
	}

	overlaps, err := overlapDefects(content, spancheck.ViewHTML, annotations)
	if err != nil {
		return nil, err
	}
	return append(defects, overlaps...), nil
}

// InspectText checks the plain-text offsets of annotations against the
// plain-text rendition of their page and reports overlapping annotations
// of the same attribute.
func (i *Inspector) InspectText(content *spancheck.Content, annotations []*spancheck.Annotation) ([]*spancheck.Defect, error) {
	var defects []*spancheck.Defect
	for _, a := range annotations {
		off := a.TextOffset
		if off == nil || off.Text == nil {
			continue
		}
		if f := checkTextSpan(content, off); f != nil {
			defects = append(defects, newDefect(spancheck.ViewText, a, f))
		}
	}

	overlaps, err := overlapDefects(content, spancheck.ViewText, annotations)
	if err != nil {
		return nil, err
	}
	return append(defects, overlaps...), nil
}

func (i *Inspector) checkMarkupSpan(content, clean *spancheck.Content, off *spancheck.Offset) *finding {
	expected := *off.Text
	if f := checkOffset(content, off); f != nil {
		return f
	}
	if strip(expected) != expected {
		return &finding{spancheck.DefectLeadingOrTrailingSpace, quote(expected)}
	}
	if tag, ok := i.Markup.FindBlockTag(expected); ok {
		return &finding{spancheck.DefectBlockTagPresent, fmt.Sprintf("%s in %s", tag, quote(expected))}
	}

	cleanText := clean.Text(off.Start, off.End)
	strippedClean := strip(cleanText)
	if strippedClean == "" {
		return &finding{spancheck.DefectInvisibleText, quote(expected)}
	}
	if strippedClean != cleanText {
		return &finding{spancheck.DefectLeadingOrTrailingSpace, quote(expected)}
	}

	unescaped := i.Markup.Unescape(cleanText)
	if strip(unescaped) != unescaped {
		return &finding{spancheck.DefectLeadingOrTrailingSpace, quote(expected)}
	}
	if !BracesPaired(unescaped) {
		return &finding{spancheck.DefectUnpairedDelimiters, quote(expected)}
	}
	return nil
}

func checkTextSpan(content *spancheck.Content, off *spancheck.Offset) *finding {
	expected := *off.Text
	if f := checkOffset(content, off); f != nil {
		return f
	}
	if strip(expected) != expected {
		return &finding{spancheck.DefectLeadingOrTrailingSpace, quote(expected)}
	}
	if !BracesPaired(expected) {
		return &finding{spancheck.DefectUnpairedDelimiters, quote(expected)}
	}
	return nil
}

// checkOffset compares the claimed text with the text at the claimed
// position. Positions outside the document are a mismatch.
func checkOffset(content *spancheck.Content, off *spancheck.Offset) *finding {
	expected := *off.Text
	if !content.Contains(off.Start) || !content.Contains(off.End) {
		return &finding{spancheck.DefectOffsetMismatch, fmt.Sprintf(
			"%s: offset out of range (%d, %d)-(%d, %d)", quote(expected),
			off.Start.LineID, off.Start.Offset, off.End.LineID, off.End.Offset)}
	}
	if actual := content.Text(off.Start, off.End); actual != expected {
		return &finding{spancheck.DefectOffsetMismatch, quote(expected) + " != " + quote(actual)}
	}
	return nil
}

// overlapDefects groups annotations by attribute and reports every pair of
// overlapping spans within a group. Annotations without an offset in view,
// or whose offset lies outside the document, are left out.
func overlapDefects(content *spancheck.Content, view spancheck.View, annotations []*spancheck.Annotation) ([]*spancheck.Defect, error) {
	var attributes []string
	groups := make(map[string][]spancheck.IndexedSpan)
	for _, a := range annotations {
		off := a.OffsetFor(view)
		if off == nil || !content.Contains(off.Start) || !content.Contains(off.End) {
			continue
		}
		span, err := spancheck.NewIndexedSpan(
			content.CharOffset(off.Start.LineID, off.Start.Offset),
			content.CharOffset(off.End.LineID, off.End.Offset),
			a,
		)
		if err != nil {
			return nil, fmt.Errorf("page %d %s offset: %w", a.PageID, view, err)
		}
		if _, ok := groups[a.Attribute]; !ok {
			attributes = append(attributes, a.Attribute)
		}
		groups[a.Attribute] = append(groups[a.Attribute], span)
	}

	var defects []*spancheck.Defect
	for _, attr := range attributes {
		for _, o := range spancheck.DetectOverlaps(groups[attr]) {
			defects = append(defects, newDefect(view, o.Annotation, &finding{
				kind: spancheck.DefectOverlappingAnnotations,
				detail: fmt.Sprintf(`%s: annotation "%d" is overlapped with "%d"`,
					attr, o.Annotation.ID, o.OverlappedAnnotation.ID),
			}))
		}
	}
	return defects, nil
}

func newDefect(view spancheck.View, a *spancheck.Annotation, f *finding) *spancheck.Defect {
	id := a.ID
	return &spancheck.Defect{
		Type:         spancheck.DefectType{View: view, Kind: f.kind},
		PageID:       a.PageID,
		AnnotationID: &id,
		Detail:       f.detail,
		Annotation:   a,
	}
}

// delimiterPairs maps each closing delimiter to its opener.
var delimiterPairs = map[rune]rune{
	')': '(',
	']': '[',
	'}': '{',
	'>': '<',
	'」': '「',
	'』': '『',
}

var openers = map[rune]bool{
	'(': true,
	'[': true,
	'{': true,
	'<': true,
	'「': true,
	'『': true,
}

// BracesPaired reports whether the bracket-like delimiters in text are
// properly nested. Text is NFKC-normalized first so full-width forms such
// as '（' pair with their ASCII counterparts.
func BracesPaired(text string) bool {
	var stack []rune
	for _, r := range norm.NFKC.String(text) {
		if openers[r] {
			stack = append(stack, r)
			continue
		}
		opener, ok := delimiterPairs[r]
		if !ok {
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1] != opener {
			return false
		}
		stack = stack[:len(stack)-1]
	}
	return len(stack) == 0
}

// isSpace reports Unicode white space and the ASCII information separators
// U+001C through U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func strip(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func quote(s string) string {
	return `"` + s + `"`
}
