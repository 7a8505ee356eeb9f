package stack

type LookupItem interface {
	Key() string
}

// UniqueStack rejects items whose key is already present.
type UniqueStack[T LookupItem] []T

func (s *UniqueStack[T]) Push(v T) error {
	if _, ok := s.Lookup(v.Key()); ok {
		return ErrDuplicateItem
	}
	*s = append(*s, v)
	return nil
}

func (s *UniqueStack[T]) Pop(n ...int) {
	nn := 1
	if len(n) > 0 {
		nn = n[0]
	}
	stackPop(s, nn)
}

func (s *UniqueStack[T]) Realloc() {
	*s = append(UniqueStack[T](nil), *s...)
}

func (s *UniqueStack[T]) PopLast() {
	l := s.Len()
	if l <= 0 {
		return
	}
	var zero T
	(*s)[l-1] = zero
	*s = (*s)[:l-1]
}

func (s UniqueStack[T]) Len() int {
	return len(s)
}

func (s UniqueStack[T]) Cap() int {
	return cap(s)
}

// Lookup searches from the top of the stack down.
func (s UniqueStack[T]) Lookup(key string) (T, bool) {
	for i := s.Len() - 1; i >= 0; i-- {
		if s[i].Key() == key {
			return s[i], true
		}
	}
	var zero T
	return zero, false
}

func (s UniqueStack[T]) Peek(n int) []T {
	if l := s.Len(); l > n {
		return s[l-n : l]
	}
	return s
}
