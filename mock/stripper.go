// Package mock provides function-field mocks of domain interfaces.
package mock

import (
	"github.com/pproszowski/tagstrip"
)

var _ tagstrip.Stripper = (*Stripper)(nil)

// Stripper is a mock implementation of tagstrip.Stripper.
type Stripper struct {
	StripFn func(document string, opts tagstrip.StripOptions) (string, error)
}

func (s *Stripper) Strip(document string, opts tagstrip.StripOptions) (string, error) {
	return s.StripFn(document, opts)
}
