// Package stack contains the LIFO containers used throughout xq.
//
// Persistent is the chunked persistent stack: a handle owns one mutable
// chunk and shares an immutable chain of older, full chunks with every
// handle cloned from it. UniqueStack is a plain slice backed stack for
// callers that never need snapshots.
package stack

import "errors"

var (
	ErrInvalidChunkSize = errors.New("chunk size must be greater than zero")
	ErrDuplicateItem    = errors.New("item already exists")
)

type StackImpl interface {
	Cap() int
	Len() int
	PopLast()
	Realloc()
}

func stackPop(s StackImpl, n int) {
	if n <= 0 {
		return
	}

	for s.Len() > 0 {
		s.PopLast()
		n--
		if n <= 0 {
			break
		}
	}

	if c := s.Cap(); c > 20 && c > s.Len()*2 {
		s.Realloc()
	}
}
