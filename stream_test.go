package xq_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ozwaldorf/xq"
	"github.com/stretchr/testify/require"
)

func TestStream(t *testing.T) {
	testcases := []struct {
		Name   string
		Input  any
		Events []any
	}{
		{
			Name:   "Scalar",
			Input:  3,
			Events: []any{[]any{[]any{}, 3}},
		},
		{
			Name:   "Empty array",
			Input:  []any{},
			Events: []any{[]any{[]any{}, []any{}}},
		},
		{
			Name:  "Nested",
			Input: map[string]any{"a": []any{1, map[string]any{"b": 2}}},
			Events: []any{
				[]any{[]any{"a", 0}, 1},
				[]any{[]any{"a", 1, "b"}, 2},
				[]any{[]any{"a", 1, "b"}},
				[]any{[]any{"a", 1}},
				[]any{[]any{"a"}},
			},
		},
		{
			Name:  "Keys in order with empty children",
			Input: map[string]any{"b": map[string]any{}, "a": nil},
			Events: []any{
				[]any{[]any{"a"}, nil},
				[]any{[]any{"b"}, map[string]any{}},
				[]any{[]any{"b"}},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			events, errs := collect(xq.Stream(xq.Values(tc.Input)))
			require.Empty(t, errs)
			require.Equal(t, tc.Events, events)
		})
	}
}

// The events must be accepted by fromstream, which rebuilds the input.
func TestStreamRoundTrip(t *testing.T) {
	deep := any(1)
	for i := 0; i < 100; i++ {
		deep = []any{deep, i}
	}
	input := map[string]any{"deep": deep, "list": []any{"x", true, 1.5}}

	inputs := xq.NewInputs(xq.Stream(xq.Values(input))).NullInput()
	values, errs := run(t, "fromstream(inputs)", inputs)
	require.Empty(t, errs)
	require.Equal(t, []any{input}, values)
}

func TestStreamError(t *testing.T) {
	boom := errors.New("truncated document")
	seq := func(yield func(any, error) bool) {
		if yield([]any{1}, nil) {
			yield(nil, boom)
		}
	}

	q, err := xq.Compile(context.Background(), ".")
	require.NoError(t, err)
	events, errs := collect(q.Run(context.Background(), xq.NewInputs(xq.Stream(seq))))
	require.Equal(t, []any{
		[]any{[]any{0}, 1},
		[]any{[]any{0}},
	}, events)
	require.Equal(t, []error{boom}, errs)
}
