// Package goquery extracts page information from markup using goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/spancheck"
)

// Ensure PageInfoExtractor implements spancheck.PageInfoExtractor.
var _ spancheck.PageInfoExtractor = (*PageInfoExtractor)(nil)

// titleSuffix matches the dump name appended to every page title.
var titleSuffix = regexp.MustCompile(`\s*-\s+Wikipedia Dump.*$`)

// PageInfoExtractor reads the title, disambiguation marker and infobox
// count of a page.
type PageInfoExtractor struct{}

// NewPageInfoExtractor creates a new PageInfoExtractor.
func NewPageInfoExtractor() *PageInfoExtractor {
	return &PageInfoExtractor{}
}

// Extract parses html. A page without a <title> gets an empty title.
func (e *PageInfoExtractor) Extract(html string) (*spancheck.PageInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, spancheck.Errorf(spancheck.EINVALID, "failed to parse HTML: %v", err)
	}

	return &spancheck.PageInfo{
		Title:                CleanTitle(doc.Find("title").First().Text()),
		IsDisambiguationPage: doc.Find("#disambigbox").Length() > 0,
		InfoboxCount:         doc.Find(".infobox").Length(),
	}, nil
}

// CleanTitle removes the trailing dump name from a page title.
func CleanTitle(title string) string {
	return titleSuffix.ReplaceAllString(title, "")
}
