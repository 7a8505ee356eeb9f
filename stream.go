package xq

import (
	"iter"
	"slices"

	"github.com/ozwaldorf/xq/internal/stack"
	"github.com/ozwaldorf/xq/internal/stack/pathstack"
)

type streamFrame struct {
	value  any
	path   *pathstack.Stack
	closed bool
}

// Stream turns every value of seq into jq streaming events: [path, leaf]
// for scalars and empty containers, and [path] once the last child of a
// non-empty container has been emitted. Errors pass through unchanged.
func Stream(seq iter.Seq2[any, error]) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for v, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			if !streamValue(v, yield) {
				return
			}
		}
	}
}

// streamValue walks v depth first. Pending branches sit on a work stack,
// each with its own snapshot of the path that leads to it.
func streamValue(v any, yield func(any, error) bool) bool {
	var work stack.Persistent[streamFrame]
	work.Push(streamFrame{value: v, path: pathstack.New()})

	for {
		f, ok := work.Pop()
		if !ok {
			return true
		}
		if f.closed {
			if !yield([]any{f.path.Path()}, nil) {
				return false
			}
			continue
		}

		switch v := f.value.(type) {
		case []any:
			if len(v) > 0 {
				work.Push(streamFrame{path: f.path.With(len(v) - 1), closed: true})
				for i := len(v) - 1; i >= 0; i-- {
					work.Push(streamFrame{value: v[i], path: f.path.With(i)})
				}
				continue
			}
		case map[string]any:
			if len(v) > 0 {
				keys := make([]string, 0, len(v))
				for k := range v {
					keys = append(keys, k)
				}
				slices.Sort(keys)
				work.Push(streamFrame{path: f.path.With(keys[len(keys)-1]), closed: true})
				for i := len(keys) - 1; i >= 0; i-- {
					work.Push(streamFrame{value: v[keys[i]], path: f.path.With(keys[i])})
				}
				continue
			}
		}

		if !yield([]any{f.path.Path(), f.value}, nil) {
			return false
		}
	}
}
