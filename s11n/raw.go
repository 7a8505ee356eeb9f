package s11n

import "io"

// rawEncoder writes strings verbatim and hands everything else to next.
type rawEncoder struct {
	w    io.Writer
	join bool
	next Encoder
}

func (e *rawEncoder) Encode(v any) error {
	s, ok := v.(string)
	if !ok {
		return e.next.Encode(v)
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		return err
	}
	if e.join {
		return nil
	}
	_, err := io.WriteString(e.w, "\n")
	return err
}
