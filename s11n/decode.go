package s11n

import (
	"bufio"
	"encoding/json"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ozwaldorf/xq"
	"gopkg.in/yaml.v3"
)

func decodeJSON(r io.Reader) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		dec := json.NewDecoder(r)
		dec.UseNumber()
		for i := 0; ; i++ {
			var v any
			if err := dec.Decode(&v); err != nil {
				if err != io.EOF {
					yield(nil, &DecodeError{Format: "json", Index: i, Err: err})
				}
				return
			}
			if !yield(xq.Normalize(v), nil) {
				return
			}
		}
	}
}

func decodeYAML(r io.Reader) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		dec := yaml.NewDecoder(r)
		for i := 0; ; i++ {
			var v any
			if err := dec.Decode(&v); err != nil {
				if err != io.EOF {
					yield(nil, &DecodeError{Format: "yaml", Index: i, Err: err})
				}
				return
			}
			if !yield(xq.Normalize(v), nil) {
				return
			}
		}
	}
}

// tomlSeparator splits a stream into several TOML documents.
const tomlSeparator = "+++"

// decodeTOML reads documents separated by lines consisting of +++. Blank
// documents are skipped.
func decodeTOML(r io.Reader) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		var buf strings.Builder
		index := 0
		flush := func() bool {
			doc := buf.String()
			buf.Reset()
			if strings.TrimSpace(doc) == "" {
				return true
			}
			var v map[string]any
			if _, err := toml.Decode(doc, &v); err != nil {
				yield(nil, &DecodeError{Format: "toml", Index: index, Err: err})
				return false
			}
			index++
			return yield(xq.Normalize(tomlTimes(v)), nil)
		}

		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if err != nil && err != io.EOF {
				yield(nil, &DecodeError{Format: "toml", Index: index, Err: err})
				return
			}
			if strings.TrimSpace(line) == tomlSeparator {
				if !flush() {
					return
				}
			} else {
				buf.WriteString(line)
			}
			if err == io.EOF {
				flush()
				return
			}
		}
	}
}

// tomlTimes renders TOML date and time values as strings, keeping local
// dates and times free of a zone.
func tomlTimes(v any) any {
	switch v := v.(type) {
	case time.Time:
		// the decoder marks local values with these zone names
		switch v.Location().String() {
		case "date-local":
			return v.Format(time.DateOnly)
		case "time-local":
			return v.Format("15:04:05.999999999")
		case "datetime-local":
			return v.Format("2006-01-02T15:04:05.999999999")
		}
		return v.Format(time.RFC3339Nano)
	case map[string]any:
		for k, e := range v {
			v[k] = tomlTimes(e)
		}
	case []map[string]any:
		for _, e := range v {
			tomlTimes(e)
		}
	case []any:
		for i, e := range v {
			v[i] = tomlTimes(e)
		}
	}
	return v
}

// RawLines yields every line of r as a string without its line ending.
func RawLines(r io.Reader, options ...DecodeOption) iter.Seq2[any, error] {
	r, err := decodeReader(r, options)
	if err != nil {
		return failed(err)
	}
	return func(yield func(any, error) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if err != nil && err != io.EOF {
				yield(nil, err)
				return
			}
			if err == io.EOF && line == "" {
				return
			}
			line = strings.TrimSuffix(line, "\n")
			if !yield(line, nil) || err == io.EOF {
				return
			}
		}
	}
}

// RawText yields the whole of r as a single string.
func RawText(r io.Reader, options ...DecodeOption) iter.Seq2[any, error] {
	r, err := decodeReader(r, options)
	if err != nil {
		return failed(err)
	}
	return func(yield func(any, error) bool) {
		b, err := io.ReadAll(r)
		if err != nil {
			yield(nil, err)
			return
		}
		yield(string(b), nil)
	}
}
