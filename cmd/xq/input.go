package main

import (
	"io"
	"iter"
	"os"
	"strings"

	"github.com/ozwaldorf/xq"
	"github.com/ozwaldorf/xq/s11n"
)

// inputError marks failures to open or decode an input, as opposed to
// errors raised by the query.
type inputError struct {
	name string
	err  error
}

func (e *inputError) Error() string {
	return e.name + ": " + e.err.Error()
}

func (e *inputError) Unwrap() error {
	return e.err
}

// inputs builds the value stream for the query from files, or from stdin
// when no file is given.
func (o *cmdopts) inputs(files []string, stdin io.Reader, format *s11n.Format) iter.Seq2[any, error] {
	var options []s11n.DecodeOption
	if o.InputEncoding != "" {
		options = append(options, s11n.WithInputEncoding(o.InputEncoding))
	}

	var seq iter.Seq2[any, error]
	switch {
	case o.RawInput && o.Slurp:
		return joinText(each(files, stdin, func(r io.Reader) iter.Seq2[any, error] {
			return s11n.RawText(r, options...)
		}))
	case o.RawInput:
		seq = each(files, stdin, func(r io.Reader) iter.Seq2[any, error] {
			return s11n.RawLines(r, options...)
		})
	default:
		seq = each(files, stdin, func(r io.Reader) iter.Seq2[any, error] {
			return format.Decode(r, options...)
		})
	}

	if o.Stream {
		seq = xq.Stream(seq)
	}
	if o.Slurp {
		seq = xq.Slurp(seq)
	}
	return seq
}

// each decodes the files one after another. Files are opened as the
// stream reaches them.
func each(files []string, stdin io.Reader, decode func(io.Reader) iter.Seq2[any, error]) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		if len(files) == 0 {
			decodeFrom("<stdin>", stdin, decode, yield)
			return
		}
		for _, path := range files {
			f, err := os.Open(path)
			if err != nil {
				yield(nil, &inputError{name: path, err: err})
				return
			}
			ok := decodeFrom(path, f, decode, yield)
			f.Close()
			if !ok {
				return
			}
		}
	}
}

func decodeFrom(name string, r io.Reader, decode func(io.Reader) iter.Seq2[any, error], yield func(any, error) bool) bool {
	for v, err := range decode(r) {
		if err != nil {
			yield(nil, &inputError{name: name, err: err})
			return false
		}
		if !yield(v, nil) {
			return false
		}
	}
	return true
}

// joinText concatenates every string of seq into a single value.
func joinText(seq iter.Seq2[any, error]) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		var sb strings.Builder
		for v, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			sb.WriteString(v.(string))
		}
		yield(sb.String(), nil)
	}
}
