package spancheck

import (
	"sort"
	"strings"
)

// LineOffset is a position relative to the start of a line.
// LineID is zero-based and Offset counts characters, not bytes.
type LineOffset struct {
	LineID int `json:"line_id"`
	Offset int `json:"offset"`
}

// Content is an immutable document together with the table of the
// character offsets at which its lines start.
//
// Lines are split on '\n' only. Other Unicode line separators such as
// U+2028 are ordinary characters because annotation coordinates are
// authored against that exact line model. All offsets count runes.
type Content struct {
	raw   string
	runes []rune

	// lineOffsets[i] is the offset of the first character of line i. The
	// last entry is len(runes), so the position (LineCount(), 0) addresses
	// the end of the document and len(lineOffsets) == lineCount+1.
	lineOffsets []int
}

// NewContent indexes raw. Returns EINVALID if raw is empty.
func NewContent(raw string) (*Content, error) {
	if raw == "" {
		return nil, Errorf(EINVALID, "content must not be empty")
	}

	runes := []rune(raw)
	lineOffsets := make([]int, 0, strings.Count(raw, "\n")+2)
	lineOffsets = append(lineOffsets, 0)
	for i, r := range runes {
		if r == '\n' {
			lineOffsets = append(lineOffsets, i+1)
		}
	}
	lineOffsets = append(lineOffsets, len(runes))

	return &Content{
		raw:         raw,
		runes:       runes,
		lineOffsets: lineOffsets,
	}, nil
}

// Raw returns the document text.
func (c *Content) Raw() string {
	return c.raw
}

// Len returns the number of characters in the document.
func (c *Content) Len() int {
	return len(c.runes)
}

// LineCount returns the number of '\n'-delimited lines.
func (c *Content) LineCount() int {
	return len(c.lineOffsets) - 1
}

// CharOffset converts a line-relative position to an absolute character offset.
// The caller must ensure 0 <= lineID <= LineCount(); use Contains to check
// positions that come from untrusted input.
func (c *Content) CharOffset(lineID, offset int) int {
	return c.lineOffsets[lineID] + offset
}

// LineOffset converts an absolute character offset to a line-relative
// position. It is the inverse of CharOffset. charOffset must not be negative.
// The end of the document is reported on the last line, not on the sentinel.
func (c *Content) LineOffset(charOffset int) LineOffset {
	lines := c.lineOffsets[:c.LineCount()]
	i := sort.Search(len(lines), func(i int) bool {
		return lines[i] > charOffset
	})
	lineID := i - 1
	return LineOffset{LineID: lineID, Offset: charOffset - c.lineOffsets[lineID]}
}

// Contains reports whether p addresses a character offset within
// [0, Len()], including the position one past the last character.
func (c *Content) Contains(p LineOffset) bool {
	if p.LineID < 0 || p.LineID >= len(c.lineOffsets) || p.Offset < 0 {
		return false
	}
	return c.CharOffset(p.LineID, p.Offset) <= len(c.runes)
}

// Text returns the text between start (inclusive) and end (exclusive).
func (c *Content) Text(start, end LineOffset) string {
	return c.TextByCharOffset(
		c.CharOffset(start.LineID, start.Offset),
		c.CharOffset(end.LineID, end.Offset),
	)
}

// TextByCharOffset returns the text between the absolute offsets start
// (inclusive) and end (exclusive). Offsets are clamped to the document and
// an inverted range yields the empty string.
func (c *Content) TextByCharOffset(start, end int) string {
	start = max(0, min(start, len(c.runes)))
	end = max(0, min(end, len(c.runes)))
	if start >= end {
		return ""
	}
	return string(c.runes[start:end])
}

// LastLineOffset returns the position one past the last character.
func (c *Content) LastLineOffset() LineOffset {
	return c.LineOffset(len(c.runes))
}

// Runes returns a copy of the document characters.
func (c *Content) Runes() []rune {
	runes := make([]rune, len(c.runes))
	copy(runes, c.runes)
	return runes
}
