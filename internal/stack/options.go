package stack

import "github.com/lestrrat-go/option"

// DefaultChunkSize is the number of slots per chunk used by the zero value
// and by NewPersistent when no size is given.
const DefaultChunkSize = 32

type Option = option.Interface

type identChunkSize struct{}

// WithChunkSize sets the number of elements held by each chunk.
func WithChunkSize(n int) Option {
	return option.New(identChunkSize{}, n)
}
