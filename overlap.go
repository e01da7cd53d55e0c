package spancheck

import (
	"cmp"
	"slices"
)

// IndexedSpan is an annotation located by absolute character offsets.
// Start is inclusive and End is exclusive.
type IndexedSpan struct {
	Start      int
	End        int
	Annotation *Annotation
}

// NewIndexedSpan returns a span over [start, end).
// Returns EINVALID unless start < end.
func NewIndexedSpan(start, end int, a *Annotation) (IndexedSpan, error) {
	if start >= end {
		id := -1
		if a != nil {
			id = a.ID
		}
		return IndexedSpan{}, Errorf(EINVALID, "annotation %d: empty or inverted span [%d, %d)", id, start, end)
	}
	return IndexedSpan{Start: start, End: end, Annotation: a}, nil
}

// Overlap is a pair of overlapping spans. Annotation belongs to the span
// that sorts first by (start, end).
type Overlap struct {
	Annotation           *Annotation
	OverlappedAnnotation *Annotation
}

// IsOverlapped reports whether the half-open ranges [startA, endA) and
// [startB, endB) intersect.
func IsOverlapped(startA, endA, startB, endB int) bool {
	return !(endA <= startB || endB <= startA)
}

// DetectOverlaps reports every unordered pair of intersecting spans exactly
// once. All spans are expected to share a grouping key such as an attribute
// and to satisfy Start < End. The input slice is not modified.
func DetectOverlaps(spans []IndexedSpan) []Overlap {
	sorted := slices.Clone(spans)
	slices.SortStableFunc(sorted, func(a, b IndexedSpan) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})

	var overlaps []Overlap
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			// Spans are sorted by start, so nothing further can reach a.
			if a.End <= b.Start {
				break
			}
			if IsOverlapped(a.Start, a.End, b.Start, b.End) {
				overlaps = append(overlaps, Overlap{
					Annotation:           a.Annotation,
					OverlappedAnnotation: b.Annotation,
				})
			}
		}
	}
	return overlaps
}
