// Package html implements spancheck.Markup for HTML using the streaming
// tokenizer from golang.org/x/net/html.
package html

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/spancheck"
	"golang.org/x/net/html"
)

// Ensure Markup implements spancheck.Markup at compile time.
var _ spancheck.Markup = (*Markup)(nil)

// Markup cleans and inspects HTML documents.
type Markup struct{}

// NewMarkup creates a new Markup.
func NewMarkup() *Markup {
	return &Markup{}
}

// Clean blanks out every tag, comment and declaration, and the text inside
// script elements. Character references are left as they are.
//
// A start, end or self-closing tag is blanked from its '<' through the
// first '>' that follows, even when an attribute value contains '>'.
func (m *Markup) Clean(content *spancheck.Content) (*spancheck.Content, error) {
	cleaned := content.Runes()
	raw := content.Raw()

	z := html.NewTokenizer(strings.NewReader(raw))
	var scripts []string
	pos := 0 // rune offset of the current token
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, spancheck.Errorf(spancheck.EINVALID, "tokenize html: %v", err)
			}
			break
		}
		n := utf8.RuneCount(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			blankTag(cleaned, pos)
			if tt == html.StartTagToken && isScriptTag(name) {
				scripts = append(scripts, string(name))
			}
			if tt == html.SelfClosingTagToken || !isRawTextTag(name) {
				z.NextIsNotRawText()
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			blankTag(cleaned, pos)
			if isScriptTag(name) && len(scripts) > 0 {
				scripts = scripts[:len(scripts)-1]
			}
		case html.CommentToken, html.DoctypeToken:
			blank(cleaned, pos, pos+n)
		case html.TextToken:
			if len(scripts) > 0 {
				blank(cleaned, pos, pos+n)
			}
		}
		pos += n
	}

	return spancheck.NewContent(string(cleaned))
}

// blankTag blanks from the '<' at start through the next '>'. Nothing is
// blanked when no '>' follows.
func blankTag(runes []rune, start int) {
	for i := start; i < len(runes); i++ {
		if runes[i] == '>' {
			blank(runes, start, i+1)
			return
		}
	}
}

// blank replaces runes[start:end] with spaces, keeping newlines.
func blank(runes []rune, start, end int) {
	end = min(end, len(runes))
	for i := start; i < end; i++ {
		if runes[i] != '\n' {
			runes[i] = ' '
		}
	}
}

func isScriptTag(name []byte) bool {
	return strings.ToLower(strings.TrimSpace(string(name))) == "script"
}

// isRawTextTag reports whether the element's content is tokenized as a
// single text token. Other elements the x/net/html tokenizer treats as raw
// text (title, textarea, noscript, ...) are tokenized as ordinary markup
// so that tags inside them are blanked too.
func isRawTextTag(name []byte) bool {
	switch strings.ToLower(string(name)) {
	case "script", "style":
		return true
	}
	return false
}

// blockTags are tags an annotation must not contain.
// TODO: decide whether spans crossing "</dt><dd>" (e.g. "東京都</dt><dd>調布市") are valid.
var blockTags = []string{
	"body",
	"caption",
	"dd",
	"dl",
	"dt",
	"footer",
	"h1",
	"h2",
	"h3",
	"h4",
	"h5",
	"h6",
	"header",
	"html",
	"img",
	"table",
	"tbody",
	"td",
	"tfoot",
	"th",
	"thead",
	"tr",
}

var blockTagRe = regexp.MustCompile(`</?\s*(?:` + strings.Join(blockTags, "|") + `)(?:\s[^<>]*)?/?\s*>`)

// FindBlockTag returns the first opening or closing block tag in text,
// matched case-insensitively and returned lowercased.
func (m *Markup) FindBlockTag(text string) (string, bool) {
	tag := blockTagRe.FindString(strings.ToLower(text))
	return tag, tag != ""
}

// Unescape decodes character and entity references such as "&amp;" and "&#38;".
func (m *Markup) Unescape(text string) string {
	return html.UnescapeString(text)
}
