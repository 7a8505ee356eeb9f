package s11n

import (
	"encoding/json"
	"io"
	"math"
	"math/big"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/ozwaldorf/xq/internal/pool"
)

// palette follows jq's default colours.
type palette struct {
	null   *color.Color
	str    *color.Color
	key    *color.Color
	delim  *color.Color
	plain  *color.Color
	enable bool
}

func newPalette(enable bool) *palette {
	p := &palette{
		null:   color.New(color.FgHiBlack),
		str:    color.New(color.FgGreen),
		key:    color.New(color.FgBlue, color.Bold),
		delim:  color.New(color.Bold),
		plain:  color.New(color.Reset),
		enable: enable,
	}
	for _, c := range []*color.Color{p.null, p.str, p.key, p.delim, p.plain} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) append(buf []byte, c *color.Color, s string) []byte {
	if !p.enable {
		return append(buf, s...)
	}
	return append(buf, c.Sprint(s)...)
}

type jsonEncoder struct {
	w      io.Writer
	indent string
	join   bool
	colors *palette
}

func newJSONEncoder(w io.Writer, cfg *encoderConfig) Encoder {
	return &jsonEncoder{
		w:      w,
		indent: cfg.indent,
		join:   cfg.join,
		colors: newPalette(cfg.color),
	}
}

func (e *jsonEncoder) Encode(v any) error {
	buf := e.appendValue(pool.ByteSlice().Get(), v, 0)
	if !e.join {
		buf = append(buf, '\n')
	}
	_, err := e.w.Write(buf)
	pool.ByteSlice().Put(buf)
	return err
}

func (e *jsonEncoder) newline(buf []byte, level int) []byte {
	if e.indent == "" {
		return buf
	}
	buf = append(buf, '\n')
	for range level {
		buf = append(buf, e.indent...)
	}
	return buf
}

func (e *jsonEncoder) appendValue(buf []byte, v any, level int) []byte {
	switch v := v.(type) {
	case nil:
		return e.colors.append(buf, e.colors.null, "null")
	case bool:
		if v {
			return e.colors.append(buf, e.colors.plain, "true")
		}
		return e.colors.append(buf, e.colors.plain, "false")
	case int:
		return e.colors.append(buf, e.colors.plain, strconv.Itoa(v))
	case float64:
		return e.colors.append(buf, e.colors.plain, formatFloat(v))
	case *big.Int:
		return e.colors.append(buf, e.colors.plain, v.String())
	case string:
		return e.colors.append(buf, e.colors.str, string(appendJSONString(nil, v)))
	case []any:
		if len(v) == 0 {
			return e.colors.append(buf, e.colors.delim, "[]")
		}
		buf = e.colors.append(buf, e.colors.delim, "[")
		for i, elem := range v {
			if i > 0 {
				buf = e.colors.append(buf, e.colors.delim, ",")
			}
			buf = e.newline(buf, level+1)
			buf = e.appendValue(buf, elem, level+1)
		}
		buf = e.newline(buf, level)
		return e.colors.append(buf, e.colors.delim, "]")
	case map[string]any:
		if len(v) == 0 {
			return e.colors.append(buf, e.colors.delim, "{}")
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		buf = e.colors.append(buf, e.colors.delim, "{")
		for i, k := range keys {
			if i > 0 {
				buf = e.colors.append(buf, e.colors.delim, ",")
			}
			buf = e.newline(buf, level+1)
			buf = e.colors.append(buf, e.colors.key, string(appendJSONString(nil, k)))
			buf = e.colors.append(buf, e.colors.delim, ":")
			if e.indent != "" {
				buf = append(buf, ' ')
			}
			buf = e.appendValue(buf, v[k], level+1)
		}
		buf = e.newline(buf, level)
		return e.colors.append(buf, e.colors.delim, "}")
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return e.colors.append(buf, e.colors.null, "null")
		}
		return e.colors.append(buf, e.colors.plain, string(b))
	}
}

// formatFloat prints v the way jq does: NaN is null and infinities clamp
// to the largest finite double.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "null"
	case math.IsInf(v, 1):
		return "1.7976931348623157e+308"
	case math.IsInf(v, -1):
		return "-1.7976931348623157e+308"
	case v == 0:
		if math.Signbit(v) {
			return "-0"
		}
		return "0"
	}
	if a := math.Abs(v); a < 1e-5 || a >= 1e17 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const hexDigits = "0123456789abcdef"

// appendJSONString quotes s as a JSON string. Invalid UTF-8 is replaced
// with U+FFFD and DEL is escaped like other control characters.
func appendJSONString(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				buf = append(buf, '\\', c)
			case c == '\n':
				buf = append(buf, '\\', 'n')
			case c == '\t':
				buf = append(buf, '\\', 't')
			case c == '\r':
				buf = append(buf, '\\', 'r')
			case c == '\b':
				buf = append(buf, '\\', 'b')
			case c == '\f':
				buf = append(buf, '\\', 'f')
			case c < 0x20 || c == 0x7f:
				buf = append(buf, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			default:
				buf = append(buf, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf = append(buf, "\ufffd"...)
		} else {
			buf = append(buf, s[i:i+size]...)
		}
		i += size
	}
	return append(buf, '"')
}
