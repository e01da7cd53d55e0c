package mock

import "github.com/fwojciec/spancheck"

var _ spancheck.PageInfoExtractor = (*PageInfoExtractor)(nil)

// PageInfoExtractor is a mock implementation of spancheck.PageInfoExtractor.
type PageInfoExtractor struct {
	ExtractFn func(html string) (*spancheck.PageInfo, error)
}

func (e *PageInfoExtractor) Extract(html string) (*spancheck.PageInfo, error) {
	return e.ExtractFn(html)
}
