package encoding

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, name := range []string{"UTF-8", "latin1", "Shift-JIS", "windows1251", "windows-1251", "KOI8R"} {
		_, ok := Load(name)
		require.True(t, ok, "Load(%q)", name)
	}
	_, ok := Load("ebcdic-klingon")
	require.False(t, ok)
}

func TestISO88591(t *testing.T) {
	e, ok := Load("iso-8859-1")
	require.True(t, ok)
	dec := e.NewDecoder()
	for i := 0xa0; i <= 0xff; i++ {
		s, err := dec.String(string([]byte{byte(i)}))
		require.NoError(t, err, "decode %#x", i)
		require.Equal(t, string(rune(i)), s, "decode %#x", i)
	}
}

func TestNewReader(t *testing.T) {
	t.Run("Transcodes", func(t *testing.T) {
		r, err := NewReader(strings.NewReader("{\"caf\xe9\": 1}"), "latin1")
		require.NoError(t, err)
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, `{"café": 1}`, string(b))
	})
	t.Run("Passthrough", func(t *testing.T) {
		src := strings.NewReader("x")
		for _, name := range []string{"", "utf-8"} {
			r, err := NewReader(src, name)
			require.NoError(t, err)
			require.Same(t, src, r)
		}
	})
	t.Run("Unknown", func(t *testing.T) {
		_, err := NewReader(strings.NewReader("x"), "nope")
		require.ErrorIs(t, err, ErrUnknownEncoding)
	})
}
