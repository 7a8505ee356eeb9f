package s11n

import (
	"fmt"
	"io"
	"math"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ozwaldorf/xq/internal/pool"
)

type tomlEncoder struct {
	w      io.Writer
	indent string
	count  int
}

func newTOMLEncoder(w io.Writer, cfg *encoderConfig) Encoder {
	return &tomlEncoder{w: w, indent: cfg.indent}
}

// Encode writes objects as TOML documents, separated by +++ lines so the
// output can be read back. TOML has no null, so null members are dropped
// and a bare null is written as the string "null". Any other value is
// written as a TOML inline value.
func (e *tomlEncoder) Encode(v any) error {
	if e.count > 0 {
		if _, err := io.WriteString(e.w, tomlSeparator+"\n"); err != nil {
			return err
		}
	}
	e.count++

	if m, ok := v.(map[string]any); ok {
		enc := toml.NewEncoder(e.w)
		enc.Indent = e.indent
		return enc.Encode(dropNulls(m))
	}

	buf := appendTOMLValue(pool.ByteSlice().Get(), v)
	buf = append(buf, '\n')
	_, err := e.w.Write(buf)
	pool.ByteSlice().Put(buf)
	return err
}

func dropNulls(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			if e != nil {
				out[k] = dropNulls(e)
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, e := range v {
			if e != nil {
				out = append(out, dropNulls(e))
			}
		}
		return out
	}
	return v
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func appendTOMLValue(buf []byte, v any) []byte {
	switch v := v.(type) {
	case nil:
		return append(buf, `"null"`...)
	case bool:
		return strconv.AppendBool(buf, v)
	case int:
		return strconv.AppendInt(buf, int64(v), 10)
	case *big.Int:
		return appendJSONString(buf, v.String())
	case float64:
		return append(buf, formatTOMLFloat(v)...)
	case string:
		return appendJSONString(buf, v)
	case []any:
		buf = append(buf, '[')
		for i, e := range v {
			if i > 0 {
				buf = append(buf, ", "...)
			}
			buf = appendTOMLValue(buf, e)
		}
		return append(buf, ']')
	case map[string]any:
		if len(v) == 0 {
			return append(buf, "{}"...)
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		buf = append(buf, "{ "...)
		for i, k := range keys {
			if i > 0 {
				buf = append(buf, ", "...)
			}
			if bareKey.MatchString(k) {
				buf = append(buf, k...)
			} else {
				buf = appendJSONString(buf, k)
			}
			buf = append(buf, " = "...)
			buf = appendTOMLValue(buf, v[k])
		}
		return append(buf, " }"...)
	}
	return appendJSONString(buf, fmt.Sprint(v))
}

func formatTOMLFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
