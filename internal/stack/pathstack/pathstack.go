// Package pathstack tracks a jq path (object keys and array indices) while
// walking a value. Snapshots are cheap, so every pending branch of a walk
// can hold its own path.
package pathstack

import "github.com/ozwaldorf/xq/internal/stack"

type Stack struct {
	s *stack.Persistent[any]
}

func New() *Stack {
	return &Stack{s: stack.MustPersistent[any]()}
}

// Push appends a path element: a string key or an int index.
func (s *Stack) Push(key any) {
	s.s.Push(key)
}

func (s *Stack) Pop() (any, bool) {
	return s.s.Pop()
}

func (s *Stack) Len() int {
	return s.s.Len()
}

// Snapshot returns a copy that is unaffected by later changes to s.
func (s *Stack) Snapshot() *Stack {
	return &Stack{s: s.s.Clone()}
}

// With returns a snapshot of s extended by key.
func (s *Stack) With(key any) *Stack {
	c := s.Snapshot()
	c.Push(key)
	return c
}

// Path returns the path root first. The result is never nil.
func (s *Stack) Path() []any {
	return s.s.Slice()
}
