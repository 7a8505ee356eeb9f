package s11n

import (
	"strings"

	"github.com/lestrrat-go/option"
)

type Option = option.Interface

type DecodeOption interface {
	Option
	decodeOption()
}

type decodeOption struct{ Option }

func (*decodeOption) decodeOption() {}

type EncodeOption interface {
	Option
	encodeOption()
}

type encodeOption struct{ Option }

func (*encodeOption) encodeOption() {}

type identInputEncoding struct{}
type identIndent struct{}
type identTab struct{}
type identColor struct{}
type identRaw struct{}
type identJoin struct{}

// WithInputEncoding transcodes the input from the named charset to UTF-8
// before decoding.
func WithInputEncoding(name string) DecodeOption {
	return &decodeOption{option.New(identInputEncoding{}, name)}
}

// WithIndent sets the number of spaces per nesting level. Zero selects
// compact output.
func WithIndent(n int) EncodeOption {
	return &encodeOption{option.New(identIndent{}, n)}
}

// WithCompact is WithIndent(0).
func WithCompact() EncodeOption {
	return WithIndent(0)
}

// WithTab indents with one tab per level.
func WithTab() EncodeOption {
	return &encodeOption{option.New(identTab{}, true)}
}

// WithColor enables ANSI colours where the format supports them.
func WithColor(v bool) EncodeOption {
	return &encodeOption{option.New(identColor{}, v)}
}

// WithRaw writes string results as-is instead of encoding them.
func WithRaw(v bool) EncodeOption {
	return &encodeOption{option.New(identRaw{}, v)}
}

// WithJoin omits the newline after each result. It implies WithRaw.
func WithJoin(v bool) EncodeOption {
	return &encodeOption{option.New(identJoin{}, v)}
}

type encoderConfig struct {
	indent string
	width  int
	color  bool
	raw    bool
	join   bool
}

func newEncoderConfig(options []EncodeOption) *encoderConfig {
	n := 2
	tab := false
	cfg := &encoderConfig{}
	for _, option := range options {
		switch option.Ident() {
		case identIndent{}:
			n = option.Value().(int)
		case identTab{}:
			tab = option.Value().(bool)
		case identColor{}:
			cfg.color = option.Value().(bool)
		case identRaw{}:
			cfg.raw = option.Value().(bool)
		case identJoin{}:
			cfg.join = option.Value().(bool)
		}
	}
	switch {
	case tab:
		cfg.indent = "\t"
	case n > 0:
		cfg.indent = strings.Repeat(" ", n)
		cfg.width = n
	}
	if cfg.join {
		cfg.raw = true
	}
	return cfg
}
