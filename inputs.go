package xq

import "iter"

// Inputs is the value stream a query runs over. The same stream supplies
// the context value of each run and the values returned by the `input`
// and `inputs` builtins, so a query that consumes inputs itself shortens
// the number of runs.
//
// The stream ends at the first error.
type Inputs struct {
	next func() (any, error, bool)
	stop func()
	null bool
	done bool
}

// NewInputs wraps a lazy sequence of decoded values. Call Close when the
// stream is abandoned before it is exhausted.
func NewInputs(seq iter.Seq2[any, error]) *Inputs {
	next, stop := iter.Pull2(seq)
	return &Inputs{next: next, stop: stop}
}

// NullInput makes the query run exactly once with null as its context.
// The stream stays reachable through `input` and `inputs`.
func (in *Inputs) NullInput() *Inputs {
	in.null = true
	return in
}

func (in *Inputs) Close() {
	in.done = true
	in.stop()
}

func (in *Inputs) pull() (any, error, bool) {
	if in.done {
		return nil, nil, false
	}
	v, err, ok := in.next()
	if !ok {
		in.done = true
		return nil, nil, false
	}
	if err != nil {
		in.Close()
		return nil, err, true
	}
	return v, nil, true
}

// Next implements gojq.Iter. Errors are delivered as values.
func (in *Inputs) Next() (any, bool) {
	v, err, ok := in.pull()
	if !ok {
		return nil, false
	}
	if err != nil {
		return err, true
	}
	return v, true
}

func (in *Inputs) contexts() iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		if in.null {
			yield(nil, nil)
			return
		}
		for {
			v, err, ok := in.pull()
			if !ok || !yield(v, err) {
				return
			}
		}
	}
}

// Slurp collects the whole sequence into a single array value. An error
// is passed on in place of the array.
func Slurp(seq iter.Seq2[any, error]) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		values := []any{}
		for v, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			values = append(values, v)
		}
		yield(values, nil)
	}
}

// Values is a convenience for building inputs from values in memory.
func Values(values ...any) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}
