package xq_test

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/ozwaldorf/xq"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	when := time.Date(2024, 2, 29, 12, 30, 0, 0, time.UTC)

	testcases := []struct {
		Name   string
		Input  any
		Expect any
	}{
		{Name: "nil", Input: nil, Expect: nil},
		{Name: "int64", Input: int64(42), Expect: 42},
		{Name: "uint64 overflow", Input: uint64(math.MaxUint64), Expect: new(big.Int).SetUint64(math.MaxUint64)},
		{Name: "float32", Input: float32(0.5), Expect: 0.5},
		{Name: "json int", Input: json.Number("17"), Expect: 17},
		{Name: "json float", Input: json.Number("1.25"), Expect: 1.25},
		{Name: "json big", Input: json.Number("123456789012345678901234567890"), Expect: huge},
		{Name: "time", Input: when, Expect: "2024-02-29T12:30:00Z"},
		{
			Name:   "nested",
			Input:  map[string]any{"a": []any{int64(1), map[any]any{2: "two", true: nil}}},
			Expect: map[string]any{"a": []any{1, map[string]any{"2": "two", "true": nil}}},
		},
		{
			Name:   "array of tables",
			Input:  []map[string]any{{"x": int64(1)}},
			Expect: []any{map[string]any{"x": 1}},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			require.Equal(t, tc.Expect, xq.Normalize(tc.Input))
		})
	}
}
