package stack

import (
	"iter"

	"github.com/lestrrat-go/pdebug/v3"
)

// link is one immutable node of the shared chain: a full chunk plus the
// older part of the stack. A link is never modified once built, so any
// number of handles may point at it.
type link[T any] struct {
	items chunk[T]
	prev  *link[T]
}

// Persistent is a stack built from fixed size chunks. The top-most chunk
// is owned by the handle and is the only memory ever mutated; older chunks
// are shared with every clone. Clone therefore costs at most one chunk
// copy, regardless of the stack depth.
//
// The zero value is an empty stack using DefaultChunkSize. A Persistent
// must not be used from multiple goroutines without external locking.
type Persistent[T any] struct {
	size    int
	current chunk[T]
	prev    *link[T]
	n       int
}

// NewPersistent creates an empty stack. A chunk size below one is
// rejected with ErrInvalidChunkSize.
func NewPersistent[T any](options ...Option) (*Persistent[T], error) {
	size := DefaultChunkSize
	for _, option := range options {
		switch option.Ident() {
		case identChunkSize{}:
			size = option.Value().(int)
		}
	}
	if size <= 0 {
		return nil, ErrInvalidChunkSize
	}
	return &Persistent[T]{
		size:    size,
		current: newChunk[T](size),
	}, nil
}

// MustPersistent is like NewPersistent but panics on a bad configuration.
func MustPersistent[T any](options ...Option) *Persistent[T] {
	s, err := NewPersistent[T](options...)
	if err != nil {
		panic(err)
	}
	return s
}

// ChunkSize reports the capacity of each chunk.
func (s *Persistent[T]) ChunkSize() int {
	if s.size <= 0 {
		return DefaultChunkSize
	}
	return s.size
}

func (s *Persistent[T]) Len() int {
	return s.n
}

func (s *Persistent[T]) IsEmpty() bool {
	return s.n == 0
}

func (s *Persistent[T]) init() {
	if s.current == nil {
		s.size = s.ChunkSize()
		s.current = newChunk[T](s.size)
	}
}

// Push places v on top of the stack. When the current chunk is full it is
// frozen into a new chain link and a fresh chunk takes its place.
func (s *Persistent[T]) Push(v T) {
	s.init()
	if s.current.full() {
		if pdebug.Enabled {
			pdebug.Printf("stack: freezing full chunk (depth %d)", s.n)
		}
		s.prev = &link[T]{items: s.current, prev: s.prev}
		s.current = newChunk[T](s.size)
	}
	s.current.push(v)
	s.n++
}

// Pop removes and returns the top element. The boolean is false when the
// stack is empty.
func (s *Persistent[T]) Pop() (T, bool) {
	if v, ok := s.current.pop(); ok {
		s.n--
		return v, true
	}
	if !s.promote() {
		var zero T
		return zero, false
	}
	v, _ := s.current.pop()
	s.n--
	return v, true
}

// Top returns the top element without modifying the stack. When the
// current chunk is empty the value is read from the shared chain.
func (s *Persistent[T]) Top() (T, bool) {
	if s.current.empty() && s.prev != nil {
		return s.prev.items.last()
	}
	return s.current.last()
}

// TopPtr returns a pointer to the top element, or nil if the stack is
// empty. The element is first moved into the handle's own chunk, so
// writes through the pointer are never visible to other handles.
func (s *Persistent[T]) TopPtr() *T {
	if s.current.empty() && !s.promote() {
		return nil
	}
	return s.current.lastPtr()
}

// promote copies the newest shared chunk into the (empty) current chunk
// and drops it from the chain.
func (s *Persistent[T]) promote() bool {
	p := s.prev
	if p == nil {
		return false
	}
	if pdebug.Enabled {
		pdebug.Printf("stack: promoting shared chunk of %d items", len(p.items))
	}
	s.init()
	s.current.assign(p.items)
	s.prev = p.prev
	return true
}

// Clone returns an independent handle. The current chunk is copied; the
// chain is shared.
func (s *Persistent[T]) Clone() *Persistent[T] {
	s.init()
	return &Persistent[T]{
		size:    s.size,
		current: s.current.clone(),
		prev:    s.prev,
		n:       s.n,
	}
}

// All iterates from the top of the stack to the bottom without modifying
// it.
func (s *Persistent[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(s.current) - 1; i >= 0; i-- {
			if !yield(s.current[i]) {
				return
			}
		}
		for p := s.prev; p != nil; p = p.prev {
			for i := len(p.items) - 1; i >= 0; i-- {
				if !yield(p.items[i]) {
					return
				}
			}
		}
	}
}

// Slice returns the contents bottom first, so the last element of the
// result is the top of the stack.
func (s *Persistent[T]) Slice() []T {
	out := make([]T, s.n)
	i := s.n
	for v := range s.All() {
		i--
		out[i] = v
	}
	return out
}
