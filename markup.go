package spancheck

// Markup understands the markup language of the HTML rendition.
type Markup interface {
	// Clean blanks out tags, comments, declarations and script bodies.
	// Every removed character becomes a space except '\n', so the result
	// has the same length and line structure as content and the same
	// coordinates address both.
	Clean(content *Content) (*Content, error)

	// FindBlockTag returns the first block-level tag (e.g. "<h1>" or
	// "</td>") in text, lowercased.
	FindBlockTag(text string) (tag string, ok bool)

	// Unescape decodes character and entity references.
	Unescape(text string) string
}
