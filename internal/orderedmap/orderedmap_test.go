package orderedmap_test

import (
	"testing"

	"github.com/ozwaldorf/xq/internal/orderedmap"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := orderedmap.New[string, int]()
	require.NoError(t, m.Set("yaml", 2))
	require.NoError(t, m.Set("json", 1))
	require.NoError(t, m.Set("toml", 3))
	require.ErrorIs(t, m.Set("json", 10), orderedmap.ErrDuplicateEntry)

	require.Equal(t, 3, m.Len())
	require.Equal(t, []string{"yaml", "json", "toml"}, m.Keys())

	v, ok := m.Get("json")
	require.True(t, ok)
	require.Equal(t, 1, v, "duplicate Set() does not overwrite")

	var seen []int
	for _, v := range m.Range() {
		seen = append(seen, v)
		if len(seen) == 2 {
			break
		}
	}
	require.Equal(t, []int{2, 1}, seen)
}
