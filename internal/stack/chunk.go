package stack

// chunk is a bounded segment of a Persistent stack. Its capacity is fixed
// at allocation time and is never exceeded: len(c) <= cap(c) == chunk size.
type chunk[T any] []T

func newChunk[T any](size int) chunk[T] {
	return make(chunk[T], 0, size)
}

func (c chunk[T]) full() bool {
	return len(c) == cap(c)
}

func (c chunk[T]) empty() bool {
	return len(c) == 0
}

// push appends v unless the chunk is full.
func (c *chunk[T]) push(v T) bool {
	if c.full() {
		return false
	}
	*c = append(*c, v)
	return true
}

func (c *chunk[T]) pop() (T, bool) {
	var zero T
	l := len(*c)
	if l == 0 {
		return zero, false
	}
	v := (*c)[l-1]
	(*c)[l-1] = zero
	*c = (*c)[:l-1]
	return v, true
}

func (c chunk[T]) last() (T, bool) {
	if l := len(c); l > 0 {
		return c[l-1], true
	}
	var zero T
	return zero, false
}

func (c chunk[T]) lastPtr() *T {
	if l := len(c); l > 0 {
		return &c[l-1]
	}
	return nil
}

// clone returns a private copy with the same capacity.
func (c chunk[T]) clone() chunk[T] {
	dst := make(chunk[T], len(c), cap(c))
	copy(dst, c)
	return dst
}

// assign replaces the contents of c with a copy of src, reusing c's
// storage. Both chunks must have the same capacity.
func (c *chunk[T]) assign(src chunk[T]) {
	*c = append((*c)[:0], src...)
}
