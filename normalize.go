package xq

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
)

// Normalize converts the output of a decoder into the value domain the
// query engine works on: nil, bool, int, float64, *big.Int, string,
// []any and map[string]any.
func Normalize(v any) any {
	switch v := v.(type) {
	case nil, bool, string, int, float64, *big.Int:
		return v
	case json.Number:
		return normalizeNumber(v.String())
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return normalizeInt64(v)
	case uint:
		return normalizeUint64(uint64(v))
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return normalizeInt64(int64(v))
	case uint64:
		return normalizeUint64(v)
	case float32:
		return float64(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case []byte:
		return string(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = Normalize(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = Normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[mapKey(k)] = Normalize(e)
		}
		return out
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func mapKey(k any) string {
	switch k := k.(type) {
	case string:
		return k
	case nil:
		return "null"
	default:
		return fmt.Sprint(k)
	}
}

func normalizeInt64(i int64) any {
	if int64(int(i)) == i {
		return int(i)
	}
	return big.NewInt(i)
}

func normalizeUint64(u uint64) any {
	if u <= math.MaxInt64 {
		return normalizeInt64(int64(u))
	}
	return new(big.Int).SetUint64(u)
}

func normalizeNumber(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return normalizeInt64(i)
	}
	if b, ok := new(big.Int).SetString(s, 10); ok {
		return b
	}
	// out of range values come back as ±Inf
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
