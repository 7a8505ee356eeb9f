// Package encoding maps charset names onto golang.org/x/text encodings so
// input documents in legacy charsets can be transcoded to UTF-8 before
// they are decoded. The x/text package names (unicode, for one) clash with
// the standard library, so they are kept out of the rest of xq.
package encoding

import (
	"errors"
	"io"
	"strings"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

var charsets = map[string]enc.Encoding{
	"utf8":              unicode.UTF8,
	"utf-16":            unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf-16be":          unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16le":          unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"euc-jp":            japanese.EUCJP,
	"shift_jis":         japanese.ShiftJIS,
	"cp932":             japanese.ShiftJIS,
	"iso-2022-jp":       japanese.ISO2022JP,
	"big5":              traditionalchinese.Big5,
	"euc-kr":            korean.EUCKR,
	"gbk":               simplifiedchinese.GBK,
	"gb18030":           simplifiedchinese.GB18030,
	"hz-gb2312":         simplifiedchinese.HZGB2312,
	"cp437":             charmap.CodePage437,
	"cp866":             charmap.CodePage866,
	"iso-8859-1":        charmap.ISO8859_1,
	"iso-8859-2":        charmap.ISO8859_2,
	"iso-8859-3":        charmap.ISO8859_3,
	"iso-8859-4":        charmap.ISO8859_4,
	"iso-8859-5":        charmap.ISO8859_5,
	"iso-8859-6":        charmap.ISO8859_6,
	"iso-8859-7":        charmap.ISO8859_7,
	"iso-8859-8":        charmap.ISO8859_8,
	"iso-8859-10":       charmap.ISO8859_10,
	"iso-8859-13":       charmap.ISO8859_13,
	"iso-8859-14":       charmap.ISO8859_14,
	"iso-8859-15":       charmap.ISO8859_15,
	"iso-8859-16":       charmap.ISO8859_16,
	"koi8-r":            charmap.KOI8R,
	"koi8-u":            charmap.KOI8U,
	"macintosh":         charmap.Macintosh,
	"macintoshcyrillic": charmap.MacintoshCyrillic,
	"windows-874":       charmap.Windows874,
	"windows-1250":      charmap.Windows1250,
	"windows-1251":      charmap.Windows1251,
	"windows-1252":      charmap.Windows1252,
	"windows-1253":      charmap.Windows1253,
	"windows-1254":      charmap.Windows1254,
	"windows-1255":      charmap.Windows1255,
	"windows-1256":      charmap.Windows1256,
	"windows-1257":      charmap.Windows1257,
	"windows-1258":      charmap.Windows1258,
}

var aliases = map[string]string{
	"utf-8":     "utf8",
	"shift-jis": "shift_jis",
	"shiftjis":  "shift_jis",
	"sjis":      "shift_jis",
	"jis":       "iso-2022-jp",
	"latin1":    "iso-8859-1",
	"koi8r":     "koi8-r",
	"koi8u":     "koi8-u",
	"cp1252":    "windows-1252",
}

func canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[name]; ok {
		return a
	}
	// windows1251 and friends
	if rest, ok := strings.CutPrefix(name, "windows"); ok && !strings.HasPrefix(rest, "-") {
		return "windows-" + rest
	}
	return name
}

// Load looks up an encoding by (case insensitive) name.
func Load(name string) (enc.Encoding, bool) {
	e, ok := charsets[canonical(name)]
	return e, ok
}

// NewReader wraps r so that reads yield UTF-8. UTF-8 and the empty name
// return r unchanged.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	if name == "" {
		return r, nil
	}
	e, ok := Load(name)
	if !ok {
		return nil, ErrUnknownEncoding
	}
	if e == unicode.UTF8 {
		return r, nil
	}
	return transform.NewReader(r, e.NewDecoder()), nil
}
