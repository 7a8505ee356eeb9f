package pcollections_test

import (
	"testing"

	"github.com/ozwaldorf/xq/internal/pcollections"
	"github.com/stretchr/testify/require"
)

func TestPHashMap(t *testing.T) {
	m0 := pcollections.NewPHashMap[int]()
	m1 := pcollections.Insert(m0, "b", 2)
	m2 := pcollections.Insert(m1, "a", 1)
	m3 := pcollections.Insert(m2, "b", 20)

	require.Equal(t, 0, m0.Len(), "original map is untouched")

	v, ok := pcollections.Get(m2, "b")
	require.True(t, ok)
	require.Equal(t, 2, v, "older version keeps its binding")

	v, ok = pcollections.Get(m3, "b")
	require.True(t, ok)
	require.Equal(t, 20, v)

	_, ok = pcollections.Get(m3, "c")
	require.False(t, ok)

	keys, values := pcollections.Entries(m3)
	require.Equal(t, []string{"a", "b"}, keys)
	require.Equal(t, []int{1, 20}, values)
}
