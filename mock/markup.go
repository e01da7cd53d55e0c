package mock

import "github.com/fwojciec/spancheck"

var _ spancheck.Markup = (*Markup)(nil)

// Markup is a mock implementation of spancheck.Markup.
type Markup struct {
	CleanFn        func(content *spancheck.Content) (*spancheck.Content, error)
	FindBlockTagFn func(text string) (string, bool)
	UnescapeFn     func(text string) string
}

func (m *Markup) Clean(content *spancheck.Content) (*spancheck.Content, error) {
	return m.CleanFn(content)
}

func (m *Markup) FindBlockTag(text string) (string, bool) {
	return m.FindBlockTagFn(text)
}

func (m *Markup) Unescape(text string) string {
	return m.UnescapeFn(text)
}
