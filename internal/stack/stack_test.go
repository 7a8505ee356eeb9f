package stack_test

import (
	"strconv"
	"testing"

	"github.com/ozwaldorf/xq/internal/stack"
	"github.com/stretchr/testify/assert"
)

type named string

func (n named) Key() string { return string(n) }

func TestUniqueStack(t *testing.T) {
	var s stack.UniqueStack[named]
	if !assert.NoError(t, s.Push("x"), `Push("x")`) {
		return
	}
	if !assert.NoError(t, s.Push("y"), `Push("y")`) {
		return
	}
	if !assert.ErrorIs(t, s.Push("x"), stack.ErrDuplicateItem, `second Push("x") fails`) {
		return
	}

	item, ok := s.Lookup("x")
	if !assert.True(t, ok, `Lookup("x") succeeds`) || !assert.Equal(t, named("x"), item) {
		return
	}

	s.Pop()
	if _, ok := s.Lookup("y"); !assert.False(t, ok, `Lookup("y") fails after Pop()`) {
		return
	}
	s.Pop(2)
	if !assert.Equal(t, 0, s.Len(), "Len == 0") {
		return
	}
}

func TestUniqueStackShrink(t *testing.T) {
	var s stack.UniqueStack[named]
	for i := 0; i < 30; i++ {
		if !assert.NoError(t, s.Push(named(strconv.Itoa(i)))) {
			return
		}
	}

	if !assert.Equal(t, []named{"27", "28", "29"}, []named(s.Peek(3)), "Peek(3)") {
		return
	}

	s.Pop(25)
	if !assert.Equal(t, 5, s.Len(), "Len == 5") {
		return
	}
	if !assert.True(t, s.Cap() <= 10, "storage shrinks after a large pop") {
		return
	}
	if !assert.NoError(t, s.Push("29"), "popped keys can be pushed again") {
		return
	}
}
