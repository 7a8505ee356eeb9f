// Package s11n decodes input documents into query values and encodes
// query results back into JSON, YAML or TOML.
package s11n

import (
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/ozwaldorf/xq/encoding"
	"github.com/ozwaldorf/xq/internal/orderedmap"
	"github.com/pkg/errors"
)

var ErrUnknownFormat = errors.New("unknown format")

// DecodeError reports a document that could not be decoded. Index counts
// documents from zero within the input stream.
type DecodeError struct {
	Format string
	Index  int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s document #%d: %s", e.Format, e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encoder writes one query result at a time.
type Encoder interface {
	Encode(v any) error
}

type Format struct {
	name       string
	extensions []string
	decode     func(io.Reader) iter.Seq2[any, error]
	encoder    func(io.Writer, *encoderConfig) Encoder
}

func (f *Format) Name() string {
	return f.name
}

func (f *Format) String() string {
	return f.name
}

// Decode lazily reads documents from r. The sequence ends after the first
// error.
func (f *Format) Decode(r io.Reader, options ...DecodeOption) iter.Seq2[any, error] {
	r, err := decodeReader(r, options)
	if err != nil {
		return failed(err)
	}
	return f.decode(r)
}

func (f *Format) NewEncoder(w io.Writer, options ...EncodeOption) Encoder {
	cfg := newEncoderConfig(options)
	enc := f.encoder(w, cfg)
	if cfg.raw {
		return &rawEncoder{w: w, join: cfg.join, next: enc}
	}
	return enc
}

var formats = orderedmap.New[string, *Format]()

func register(f *Format) {
	if err := formats.Set(f.name, f); err != nil {
		panic(fmt.Sprintf("s11n: format %q registered twice", f.name))
	}
}

func init() {
	register(&Format{name: "json", extensions: []string{".json"}, decode: decodeJSON, encoder: newJSONEncoder})
	register(&Format{name: "yaml", extensions: []string{".yaml", ".yml"}, decode: decodeYAML, encoder: newYAMLEncoder})
	register(&Format{name: "toml", extensions: []string{".toml"}, decode: decodeTOML, encoder: newTOMLEncoder})
}

func Lookup(name string) (*Format, error) {
	f, ok := formats.Get(strings.ToLower(name))
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "format %q", name)
	}
	return f, nil
}

// Names lists the registered formats, json first.
func Names() []string {
	return formats.Keys()
}

// ByExtension picks a format from the extension of path.
func ByExtension(path string) (*Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	for _, f := range formats.Range() {
		for _, e := range f.extensions {
			if e == ext {
				return f, true
			}
		}
	}
	return nil, false
}

func decodeReader(r io.Reader, options []DecodeOption) (io.Reader, error) {
	for _, option := range options {
		switch option.Ident() {
		case identInputEncoding{}:
			name := option.Value().(string)
			er, err := encoding.NewReader(r, name)
			if err != nil {
				return nil, errors.Wrapf(err, "input encoding %q", name)
			}
			r = er
		}
	}
	return r, nil
}

func failed(err error) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		yield(nil, err)
	}
}
