package spancheck

// CatalogEntry describes one page of a category.
type CatalogEntry struct {
	PageID       int    `json:"pageId"`
	Title        string `json:"title"`
	HTMLFileSize int64  `json:"htmlFileSize"`
	TextFileSize int64  `json:"textFileSize"`

	IsDisambiguationPage bool `json:"isDisambiguationPage"`
	InfoboxCount         int  `json:"infoboxCount"`

	// AnnotationCount is nil when the page does not appear in the
	// category's annotation file.
	AnnotationCount            *int           `json:"annotationCount,omitempty"`
	AnnotationCountByAttribute map[string]int `json:"annotationCountByAttribute,omitempty"`
}

// Catalog lists the pages of a category.
type Catalog struct {
	Category string `json:"category"`

	// Attributes are the attribute names annotated anywhere in the
	// category, sorted.
	Attributes []string        `json:"attributes"`
	Entries    []*CatalogEntry `json:"entries"`
}

// CatalogSummary holds the totals of a catalog.
type CatalogSummary struct {
	NumPages                  int
	TotalHTMLFileSize         int64
	TotalTextFileSize         int64
	NumDisambiguationPages    int
	TotalInfoboxCount         int
	NumPagesWithAnnotation    int
	NumPagesWithInfobox       int
	NumAttributeTypes         int
	TotalNumAnnotations       int
	NumAnnotationsByAttribute map[string]int
}

// Summary totals the catalog entries.
func (c *Catalog) Summary() CatalogSummary {
	s := CatalogSummary{
		NumAttributeTypes:         len(c.Attributes),
		NumAnnotationsByAttribute: make(map[string]int),
	}
	for _, e := range c.Entries {
		s.NumPages++
		s.TotalHTMLFileSize += e.HTMLFileSize
		s.TotalTextFileSize += e.TextFileSize
		s.TotalInfoboxCount += e.InfoboxCount
		if e.AnnotationCount != nil && *e.AnnotationCount > 0 {
			s.NumPagesWithAnnotation++
			s.TotalNumAnnotations += *e.AnnotationCount
			for attr, n := range e.AnnotationCountByAttribute {
				s.NumAnnotationsByAttribute[attr] += n
			}
		}
		if e.IsDisambiguationPage {
			s.NumDisambiguationPages++
		}
		if e.InfoboxCount > 0 {
			s.NumPagesWithInfobox++
		}
	}
	return s
}
