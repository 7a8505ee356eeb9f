// Package xq runs jq queries over streams of structured values. Values come
// from any decoder (JSON, YAML, TOML, raw text); the query language is
// provided by gojq.
package xq

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/ozwaldorf/xq/internal/pcollections"
	"github.com/ozwaldorf/xq/internal/stack"
	"github.com/pkg/errors"
)

const Version = "0.4.0"

// Query is a compiled jq program. A Query may be run any number of times,
// but not concurrently.
type Query struct {
	src    string
	code   *gojq.Code
	values []any
	input  *inputProxy
}

// inputProxy lets the compiled code reach the Inputs of the current run
// through the `input` and `inputs` builtins.
type inputProxy struct {
	src gojq.Iter
}

func (p *inputProxy) Next() (any, bool) {
	if p.src == nil {
		return nil, false
	}
	return p.src.Next()
}

type modulePath string

func (p modulePath) Key() string { return string(p) }

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Compile parses and compiles src. Blank source is the identity query.
func Compile(ctx context.Context, src string, options ...Option) (*Query, error) {
	ctx, span := StartSpan(ctx, "xq.Compile")
	defer span.End()

	if strings.TrimSpace(src) == "" {
		src = "."
	}

	var loader gojq.ModuleLoader
	var paths stack.UniqueStack[modulePath]
	var environ func() []string
	vars := pcollections.NewPHashMap[any]()
	for _, option := range options {
		switch option.Ident() {
		case identModuleLoader{}:
			loader = option.Value().(gojq.ModuleLoader)
		case identModulePaths{}:
			for _, p := range option.Value().([]string) {
				// the first occurrence of a path decides its priority
				_ = paths.Push(modulePath(expandHome(p)))
			}
		case identVariable{}:
			v := option.Value().(variable)
			vars = pcollections.Insert(vars, v.name, v.value)
		case identEnviron{}:
			environ = option.Value().(func() []string)
		}
	}

	parsed, err := gojq.Parse(src)
	if err != nil {
		TraceError(ctx, err, "failed to parse query")
		return nil, &CompileError{Query: src, Err: err}
	}

	names, values := pcollections.Entries(vars)
	input := &inputProxy{}
	compilerOptions := []gojq.CompilerOption{
		gojq.WithVariables(names),
		gojq.WithInputIter(input),
	}
	if loader == nil && paths.Len() > 0 {
		dirs := make([]string, 0, paths.Len())
		for _, p := range paths {
			dirs = append(dirs, string(p))
		}
		loader = gojq.NewModuleLoader(dirs)
	}
	if loader != nil {
		compilerOptions = append(compilerOptions, gojq.WithModuleLoader(loader))
	}
	if environ != nil {
		compilerOptions = append(compilerOptions, gojq.WithEnvironLoader(environ))
	}

	code, err := gojq.Compile(parsed, compilerOptions...)
	if err != nil {
		TraceError(ctx, err, "failed to compile query")
		return nil, &CompileError{Query: src, Err: err}
	}
	TraceEvent(ctx, "compiled query",
		slog.String("query", src),
		slog.Int("variables", len(names)),
	)

	return &Query{
		src:    src,
		code:   code,
		values: values,
		input:  input,
	}, nil
}

func (q *Query) String() string {
	return q.src
}

// Run evaluates the query once per context value of inputs and yields the
// results lazily. Runtime errors are yielded and evaluation continues with
// the next result; an input error or a halt ends the run.
func (q *Query) Run(ctx context.Context, inputs *Inputs) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		ctx, span := StartSpan(ctx, "xq.Run")
		defer span.End()

		q.input.src = inputs
		defer func() { q.input.src = nil }()

		for v, err := range inputs.contexts() {
			if err != nil {
				TraceError(ctx, err, "failed to read input")
				yield(nil, err)
				return
			}
			TraceEvent(ctx, "evaluating input", slog.String("type", fmt.Sprintf("%T", v)))

			results := q.code.RunWithContext(ctx, v, q.values...)
			for {
				r, ok := results.Next()
				if !ok {
					break
				}
				err, ok := r.(error)
				if !ok {
					if !yield(r, nil) {
						return
					}
					continue
				}

				var halt *gojq.HaltError
				if errors.As(err, &halt) {
					TraceEvent(ctx, "halted", slog.Int("code", halt.ExitCode()))
					yield(nil, &HaltError{Value: halt.Value(), Code: halt.ExitCode()})
					return
				}
				TraceError(ctx, err, "query raised an error")
				if !yield(nil, err) {
					return
				}
			}
		}
	}
}

// RunQuery compiles src and runs it over inputs.
func RunQuery(ctx context.Context, src string, inputs *Inputs, options ...Option) (iter.Seq2[any, error], error) {
	q, err := Compile(ctx, src, options...)
	if err != nil {
		return nil, errors.Wrap(err, `failed to prepare query`)
	}
	return q.Run(ctx, inputs), nil
}
